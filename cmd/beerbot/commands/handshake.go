package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var handshakeCmd = &cobra.Command{
	Use:   "handshake",
	Short: "Send the handshake probe to a running bot",
	Long: `Posts {"handshake": true, "ping": ..., "seed": ...} to a bot the way the
game simulator does and prints the reply.

Example:
  beerbot handshake --url http://127.0.0.1:8080/api/decision`,
	RunE: runHandshake,
}

var (
	handshakeURL     string
	handshakePing    string
	handshakeSeed    int
	handshakeTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(handshakeCmd)
	handshakeCmd.Flags().StringVar(&handshakeURL, "url", "http://127.0.0.1:8080/api/decision", "decision endpoint")
	handshakeCmd.Flags().StringVar(&handshakePing, "ping", "hello", "ping text")
	handshakeCmd.Flags().IntVar(&handshakeSeed, "seed", 2025, "seed")
	handshakeCmd.Flags().DurationVar(&handshakeTimeout, "timeout", 5*time.Second, "request timeout")
}

func runHandshake(cmd *cobra.Command, args []string) error {
	body, err := json.Marshal(map[string]interface{}{
		"handshake": true,
		"ping":      handshakePing,
		"seed":      handshakeSeed,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "POST %s\n", handshakeURL)

	client := &http.Client{Timeout: handshakeTimeout}
	resp, err := client.Post(handshakeURL, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("✗ could not reach the bot; is it running?"))
		return fmt.Errorf("handshake: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") != nil {
		pretty.Reset()
		pretty.Write(raw)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("✗ status %d", resp.StatusCode)))
		fmt.Fprintln(out, pretty.String())
		return fmt.Errorf("handshake: unexpected status %d", resp.StatusCode)
	}

	var reply struct {
		Ok      bool   `json:"ok"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &reply)
	if reply.Ok && reply.Message == "BeerBot ready" {
		fmt.Fprintln(out, okStyle.Render("✓ bot ready"))
	} else {
		fmt.Fprintln(out, errorStyle.Render("✗ reply is not a valid handshake"))
	}
	fmt.Fprintln(out, pretty.String())
	return nil
}
