package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	applog "tradepost/internal/log"
	"tradepost/internal/services"
	"tradepost/internal/validate"
)

const replySuccess = "Success"

// errBadCommand covers both unrecognized verbs and wrong argument counts.
var errBadCommand = errors.New("invalid command or arguments")

type Dispatcher struct {
	Market *services.MarketplaceService
}

func NewDispatcher(market *services.MarketplaceService) *Dispatcher {
	return &Dispatcher{Market: market}
}

// Dispatch executes one raw input line and returns the result to print.
// Blank lines (and lines that tokenize to nothing) return ok=false. A panic
// inside an operation is reported as a result line so the loop survives it.
func (d *Dispatcher) Dispatch(line string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error("dispatch.panic", fmt.Errorf("%v", r), map[string]any{"line_len": len(line)})
			out, ok = fmt.Sprintf("Error - internal error: %v", r), true
		}
	}()

	args := Tokenize(line)
	if len(args) == 0 {
		return "", false
	}
	verb := strings.ToUpper(args[0])

	start := time.Now()
	result, err := d.run(verb, args[1:])
	applog.Command(verb, time.Since(start), err, map[string]any{"args": len(args) - 1})

	if err != nil {
		return "Error - " + err.Error(), true
	}
	return result, true
}

func (d *Dispatcher) run(verb string, args []string) (string, error) {
	switch verb {
	case "REGISTER":
		if len(args) != 1 {
			return "", errBadCommand
		}
		if err := d.Market.RegisterUser(args[0]); err != nil {
			return "", err
		}
		return replySuccess, nil

	case "CREATE_LISTING":
		if len(args) != 5 {
			return "", errBadCommand
		}
		price, err := validate.Price(args[3])
		if err != nil {
			return "", err
		}
		id, err := d.Market.CreateListing(args[0], args[1], args[2], price, args[4])
		if err != nil {
			return "", err
		}
		return strconv.Itoa(id), nil

	case "DELETE_LISTING":
		if len(args) != 2 {
			return "", errBadCommand
		}
		id, err := validate.ListingID(args[1])
		if err != nil {
			return "", err
		}
		if err := d.Market.DeleteListing(args[0], id); err != nil {
			return "", err
		}
		return replySuccess, nil

	case "GET_LISTING":
		if len(args) != 2 {
			return "", errBadCommand
		}
		id, err := validate.ListingID(args[1])
		if err != nil {
			return "", err
		}
		return d.Market.GetListing(args[0], id)

	case "GET_CATEGORY":
		if len(args) != 2 {
			return "", errBadCommand
		}
		return d.Market.GetCategory(args[0], args[1])

	case "GET_TOP_CATEGORY":
		if len(args) != 1 {
			return "", errBadCommand
		}
		return d.Market.GetTopCategory(args[0])
	}
	return "", errBadCommand
}
