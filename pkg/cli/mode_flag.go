package cli

import (
	"github.com/spf13/pflag"

	"sqltext/pkg/sqltext"
)

// modeValue adapts sqltext.Mode to a pflag.Value.
type modeValue struct {
	mode *sqltext.Mode
}

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string {
	if v.mode == nil {
		return sqltext.ModeStrict.String()
	}
	return v.mode.String()
}

func (v *modeValue) Set(s string) error {
	m, err := sqltext.ParseMode(s)
	if err != nil {
		return err
	}
	*v.mode = m
	return nil
}

func (v *modeValue) Type() string { return "mode" }
