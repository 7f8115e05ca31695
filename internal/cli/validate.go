package cli

import (
	"github.com/julianstephens/timetable/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	ctx.printf("Validating %s...\n\n", ctx.Runtime.ConfigFile)
	result := validation.ValidateConfig(ctx.Runtime.Timetable)
	ctx.println(result.FormatReport())
	return result.Err()
}
