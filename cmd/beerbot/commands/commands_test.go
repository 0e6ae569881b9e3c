package commands

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerbot/internal/api"
	"beerbot/internal/decision"
	"beerbot/internal/logger"
	"beerbot/internal/simulation"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("POLICY_FILE", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDecideCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.json")
	body := `{"mode":"blackbox","weeks":[{"week":1,"roles":{
	  "retailer":{"inventory":12,"backlog":0,"incoming_orders":4},
	  "wholesaler":{"inventory":12,"backlog":0,"incoming_orders":4},
	  "distributor":{"inventory":12,"backlog":0,"incoming_orders":4},
	  "factory":{"inventory":12,"backlog":0,"incoming_orders":4}}}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := execute(t, "decide", "--file", path, "--mode", "", "--explain=false")
	require.NoError(t, err)

	var resp struct {
		Orders map[string]int `json:"orders"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, map[string]int{"retailer": 6, "wholesaler": 6, "distributor": 6, "factory": 6}, resp.Orders)
}

func TestDecideCommand_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weeks":[{"week":1,"roles":{}}]}`), 0o644))

	_, err := execute(t, "decide", "--file", path, "--mode", "", "--explain=false")
	require.Error(t, err)
	assert.ErrorIs(t, err, decision.ErrMalformedHistory)
}

func TestHandshakeCommand(t *testing.T) {
	srv := newBotServer(t)
	defer srv.Close()

	out, err := execute(t, "handshake", "--url", srv.URL+"/api/decision")
	require.NoError(t, err)
	assert.Contains(t, out, "bot ready")
	assert.Contains(t, out, `"message": "BeerBot ready"`)
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--compare", "--weeks", "12", "--demand", "step", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "blackbox")
	assert.Contains(t, out, "glassbox")
	for _, role := range decision.Roles {
		assert.Contains(t, out, string(role))
	}
	assert.Equal(t, 2, strings.Count(out, "total cost"))
}

func TestRenderReport(t *testing.T) {
	policy, err := decision.New(decision.DefaultParams())
	require.NoError(t, err)
	g, err := simulation.NewGame(simulation.DefaultConfig(), policy)
	require.NoError(t, err)
	res, err := g.Run()
	require.NoError(t, err)

	out := renderReport(res, simulation.DemandStep)
	assert.Contains(t, out, "36 weeks")
	assert.Contains(t, out, res.TotalCost.StringFixed(2))
}

func newBotServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, policy, err := loadPolicy()
	require.NoError(t, err)
	log := logger.Nop()
	return httptest.NewServer(api.NewRouter(cfg, api.NewDecisionHandler(cfg, policy, log), log))
}
