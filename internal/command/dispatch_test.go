package command_test

import (
	"strings"
	"testing"

	"tradepost/internal/command"
	"tradepost/internal/services"
)

func newDispatcher(t *testing.T) *command.Dispatcher {
	t.Helper()
	return command.NewDispatcher(services.NewMarketplaceService(nil))
}

// mustDispatch runs a line that is expected to produce output.
func mustDispatch(t *testing.T, d *command.Dispatcher, line string) string {
	t.Helper()
	out, ok := d.Dispatch(line)
	if !ok {
		t.Fatalf("no output for %q", line)
	}
	return out
}

func TestDispatch_Flow(t *testing.T) {
	d := newDispatcher(t)

	if out := mustDispatch(t, d, "REGISTER alice"); out != "Success" {
		t.Fatalf("register: got %q", out)
	}
	if out := mustDispatch(t, d, "register Alice"); out != "Error - user already existing" {
		t.Fatalf("duplicate register: got %q", out)
	}

	id := mustDispatch(t, d, "CREATE_LISTING alice 'Phone model 8' 'Black color, brand new' 177.25 'Electronics'")
	if id != "100001" {
		t.Fatalf("create: got %q", id)
	}

	out := mustDispatch(t, d, "GET_LISTING alice "+id)
	if !strings.HasPrefix(out, "Phone model 8|Black color, brand new|177|") {
		t.Fatalf("get listing: got %q", out)
	}
	if !strings.HasSuffix(out, "|Electronics|alice") {
		t.Fatalf("get listing: got %q", out)
	}

	if out := mustDispatch(t, d, "GET_TOP_CATEGORY alice"); out != "Electronics" {
		t.Fatalf("top category: got %q", out)
	}
	if out := mustDispatch(t, d, "DELETE_LISTING alice "+id); out != "Success" {
		t.Fatalf("delete: got %q", out)
	}
	if out := mustDispatch(t, d, "GET_LISTING alice "+id); out != "Error - not found" {
		t.Fatalf("get after delete: got %q", out)
	}
}

func TestDispatch_InvalidCommandOrArity(t *testing.T) {
	d := newDispatcher(t)

	for _, line := range []string{
		"REGISTER",
		"REGISTER alice bob",
		"FROBNICATE alice",
		"CREATE_LISTING alice onlytwo",
		"GET_TOP_CATEGORY",
	} {
		if out := mustDispatch(t, d, line); out != "Error - invalid command or arguments" {
			t.Fatalf("%q: got %q", line, out)
		}
	}

	// The failed REGISTER arity check must not have created a user.
	if out := mustDispatch(t, d, "GET_TOP_CATEGORY alice"); out != "Error - unknown user" {
		t.Fatalf("user should not exist: got %q", out)
	}
}

func TestDispatch_InvalidNumberFormat(t *testing.T) {
	d := newDispatcher(t)
	mustDispatch(t, d, "REGISTER alice")

	for _, line := range []string{
		"CREATE_LISTING alice title desc twelve tools",
		"CREATE_LISTING alice title desc -5 tools",
		"DELETE_LISTING alice abc",
		"GET_LISTING alice 1e",
	} {
		if out := mustDispatch(t, d, line); out != "Error - invalid number format" {
			t.Fatalf("%q: got %q", line, out)
		}
	}
}

func TestDispatch_BlankLineProducesNothing(t *testing.T) {
	d := newDispatcher(t)
	if out, ok := d.Dispatch("   "); ok {
		t.Fatalf("blank line produced output %q", out)
	}
}

func TestDispatch_UnknownUserErrors(t *testing.T) {
	d := newDispatcher(t)

	for line, want := range map[string]string{
		"CREATE_LISTING ghost t d 1 c": "Error - unknown user",
		"GET_LISTING ghost 100001":     "Error - unknown user",
		"GET_CATEGORY ghost tools":     "Error - unknown user",
		"GET_TOP_CATEGORY ghost":       "Error - unknown user",
	} {
		if out := mustDispatch(t, d, line); out != want {
			t.Fatalf("%q: want %q, got %q", line, want, out)
		}
	}
}
