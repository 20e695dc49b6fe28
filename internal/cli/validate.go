package cli

import (
	"fmt"

	"github.com/habitline/habitline/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	state, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	fmt.Println("Validating tasks and logs...")
	result := validation.New().ValidateState(state, ctx.Today)

	fmt.Println()
	fmt.Println(result.FormatReport())
	return nil
}
