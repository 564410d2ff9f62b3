package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"go.uber.org/zap/zaptest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newNode(t *testing.T) *httptest.Server {
	gen, err := genesis.New("TEST", 1, 10)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct genesis: %v", failed, err)
	}

	st, err := state.New(state.Config{Genesis: gen})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	srv := httptest.NewServer(handlers.PublicMux(handlers.MuxConfig{
		Shutdown:    make(chan os.Signal, 1),
		Log:         zaptest.NewLogger(t).Sugar(),
		State:       st,
		Evts:        events.New(),
		DemoAccount: "Miner1",
	}))
	t.Cleanup(srv.Close)

	return srv
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestWallet(t *testing.T) {
	srv := newNode(t)

	tt := []struct {
		name string
		args []string
		exp  string
		fail bool
	}{
		{"send", []string{"send", "-u", srv.URL, "-f", "Alice", "-t", "Bob", "-v", "10"}, "transaction added to mempool", false},
		{"verify", []string{"verify", "-u", srv.URL}, "mempool: valid: 1", false},
		{"mine", []string{"mine", "-u", srv.URL, "-m", "Miner1"}, "block 1:", false},
		{"wallet", []string{"balance", "-u", srv.URL}, "10", false},
		{"bob", []string{"balance", "-u", srv.URL, "Bob"}, "Bob: 10", false},
		{"alice", []string{"balance", "-u", srv.URL, "Alice"}, "Alice: -10", false},
		{"negative", []string{"send", "-u", srv.URL, "-f", "Alice", "-t", "Bob", "--amount=-1"}, "amount", true},
	}

	t.Log("Given the need to drive a node from the wallet.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen running the %s command.", testID, tst.name)
			{
				out, err := run(tst.args...)

				switch tst.fail {
				case true:
					if err == nil || !strings.Contains(err.Error(), tst.exp) {
						t.Fatalf("\t%s\tTest %d:\tShould fail with %q : %v", failed, testID, tst.exp, err)
					}
					t.Logf("\t%s\tTest %d:\tShould fail with %q.", success, testID, tst.exp)

				default:
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to run the command : %v", failed, testID, err)
					}
					if !strings.Contains(out, tst.exp) {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, out)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected output.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected output.", success, testID)
				}
			}
		}
	}
}
