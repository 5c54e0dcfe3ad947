package dispatcher

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment tracks the environment variables the application reacts
// to, so global help can list them all in one place.
type Environment struct {
	v      *viper.Viper
	prefix string

	vars []*EnvVar
}

type EnvVar struct {
	key         string
	description string
	def         string
}

func NewEnvironment(v *viper.Viper, prefix string) *Environment {
	return &Environment{v: v, prefix: prefix}
}

// Prefix returns the application's environment variable prefix, e.g.
// MYAPP for an app named my-app.
func (e *Environment) Prefix() string {
	return e.prefix
}

func (e *Environment) envName(key string) string {
	key = strings.NewReplacer(".", "_", "-", "_").Replace(key)

	return strings.ToUpper(e.prefix + "_" + key)
}

func (e *Environment) AddVar(key, description string) {
	e.AddVarWithDefault(key, description, "")
}

func (e *Environment) AddVarWithDefault(key, description, def string) {
	if def != "" {
		e.v.SetDefault(key, def)
	}

	e.vars = append(e.vars, &EnvVar{key: key, description: description, def: def})
}

// Info returns one (name, description) row per registered variable.
func (e *Environment) Info() [][]string {
	info := make([][]string, len(e.vars))

	for i, v := range e.vars {
		def := ""
		if v.def != "" {
			def = fmt.Sprintf(" (default %s)", v.def)
		}

		info[i] = []string{"$" + e.envName(v.key), fmt.Sprintf("%s%s.", v.description, def)}
	}

	return info
}

// BindCLIFlag ties a flag to its viper key, so the value resolves from
// the command line first, then the environment, then the default. The
// flag usage gains the variable name.
func (e *Environment) BindCLIFlag(key string, f *pflag.Flag) {
	err := e.v.BindPFlag(key, f)
	if err != nil {
		panic(err)
	}

	f.Usage += fmt.Sprintf(` [%s]`, e.envName(key))
}
