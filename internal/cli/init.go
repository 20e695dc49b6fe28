package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.LoadHabits(); err != nil {
		return err
	}
	if _, err := ctx.Store.LoadTrace(ctx.Today); err != nil {
		return err
	}
	fmt.Printf("Initialized habitline storage at: %s\n", ctx.Store.Path())
	return nil
}
