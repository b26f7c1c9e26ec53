package command

import (
	"strings"

	"github.com/central-university-dev/go-currency-bot/internal/common"
	"github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

// Variant is one accepted argument list of a command.
type Variant struct {
	Args   []common.Predicate
	Action models.ActionType
	Bind   func(action *models.Action, args []string)
}

func (v Variant) matches(args []string) bool {
	if len(args) != len(v.Args) {
		return false
	}

	for i, predicate := range v.Args {
		if !predicate(args[i]) {
			return false
		}
	}

	return true
}

type Spec struct {
	Command  models.CommandType
	Usage    string
	Info     string
	Variants []Variant
}

type Resolver struct {
	specs []Spec
	index map[models.CommandType]int
}

func NewResolver() *Resolver {
	return NewResolverWithTable(DefaultTable())
}

func NewResolverWithTable(specs []Spec) *Resolver {
	index := make(map[models.CommandType]int, len(specs))
	for i, spec := range specs {
		index[spec.Command] = i
	}

	return &Resolver{
		specs: specs,
		index: index,
	}
}

// ResolveText splits a message on whitespace and resolves it.
func (r *Resolver) ResolveText(text string) (*models.Action, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil, &errors.ErrUnknownCommand{Command: ""}
	}

	return r.Resolve(parts[0], parts[1:])
}

// Resolve picks the first variant of keyword whose arity and argument
// shapes match args. It returns ErrUnknownCommand for a keyword outside the
// table and ErrUsage when no variant matches.
func (r *Resolver) Resolve(keyword string, args []string) (*models.Action, error) {
	spec, ok := r.Lookup(keyword)
	if !ok || !strings.HasPrefix(keyword, "/") {
		return nil, &errors.ErrUnknownCommand{Command: keyword}
	}

	for _, variant := range spec.Variants {
		if !variant.matches(args) {
			continue
		}

		action := &models.Action{
			Type:    variant.Action,
			Command: spec.Command,
		}

		variant.Bind(action, args)

		return action, nil
	}

	return nil, &errors.ErrUsage{Keyword: string(spec.Command), Usage: spec.Usage}
}

// Lookup finds a command by keyword. The leading slash is optional, case is
// ignored and a @botname suffix is dropped.
func (r *Resolver) Lookup(name string) (Spec, bool) {
	i, ok := r.index[normalizeKeyword(name)]
	if !ok {
		return Spec{}, false
	}

	return r.specs[i], true
}

func (r *Resolver) Specs() []Spec {
	return r.specs
}

func normalizeKeyword(keyword string) models.CommandType {
	keyword = strings.ToLower(keyword)

	if at := strings.IndexByte(keyword, '@'); at >= 0 {
		keyword = keyword[:at]
	}

	if !strings.HasPrefix(keyword, "/") {
		keyword = "/" + keyword
	}

	return models.CommandType(keyword)
}
