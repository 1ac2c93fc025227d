package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fieldadmin/internal/client/client"
	"github.com/pterm/pterm"
)

// clearValue typed at a form prompt empties a field that has a value.
const clearValue = "-"

// ask prompts for one field showing its current value. An empty answer
// keeps current and clearValue empties it.
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	switch s {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	return s, nil
}

// askID is ask for an id field. Zero means no value.
func (a *App) askID(label string, current int64) (int64, error) {
	s, err := a.ask(label, idCell(current))
	if err != nil || s == "" {
		return 0, err
	}
	return parseID(s)
}

// askBool accepts s/si/sí/y/yes and n/no, keeping current on an empty answer.
func (a *App) askBool(label string, current bool) (bool, error) {
	cur := "n"
	if current {
		cur = "s"
	}
	s, err := a.ask(label+" (s/n)", cur)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: answer s or n", client.ErrValidation)
}

// confirm asks before a destructive call. Anything but yes cancels.
func (a *App) confirm(what string) (bool, error) {
	ok, err := a.askBool("¿Eliminar "+what+"?", false)
	if err != nil {
		return false, err
	}
	if !ok {
		pterm.Info.Println("Cancelled")
	}
	return ok, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", client.ErrValidation, s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, s := range args {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// idArg takes the single id operand of verbs such as "edit <id>".
func idArg(usage string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return parseID(args[0])
}

// findByID picks the row with id from a listing, for resources the backend
// only exposes as a collection.
func findByID[T any](rows []T, id int64, idOf func(T) int64) (T, error) {
	for _, r := range rows {
		if idOf(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: id %d", client.ErrNotFound, id)
}
