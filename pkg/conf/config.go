package conf

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Option interface {
	apply(v *viper.Viper) error
}

type optionFunc func(v *viper.Viper) error

func (f optionFunc) apply(v *viper.Viper) error {
	return f(v)
}

func EnvPrefix(prefix string) Option {
	return optionFunc(func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		return nil
	})
}

// ConfigFile reads the given file before env overrides. Empty path is a no-op.
func ConfigFile(path string) Option {
	return optionFunc(func(v *viper.Viper) error {
		if len(path) == 0 {
			return nil
		}
		v.SetConfigFile(path)
		return errors.Wrap(v.ReadInConfig(), "Failed to load config")
	})
}

func Default(key string, value interface{}) Option {
	return optionFunc(func(v *viper.Viper) error {
		v.SetDefault(key, value)
		return nil
	})
}

// Flag lets an explicitly set command line flag win over file and env.
func Flag(key string, flag *pflag.Flag) Option {
	return optionFunc(func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return errors.Wrapf(v.BindPFlag(key, flag), "Failed to bind flag %s", flag.Name)
	})
}

// https://github.com/spf13/viper/issues/188#issuecomment-399884438
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) error {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)

	if ifv.Kind() == reflect.Ptr {
		return bindEnvs(v, ifv.Elem().Interface(), parts...)
	}

	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		name, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			name = t.Name
		}
		if fv.Kind() == reflect.Struct {
			if err := bindEnvs(v, fv.Interface(), append(parts, name)...); err != nil {
				return err
			}
		} else if err := v.BindEnv(strings.Join(append(parts, name), ".")); err != nil {
			return err
		}
	}
	return nil
}

func ParseConfig(config interface{}, options ...Option) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, option := range options {
		if err := option.apply(v); err != nil {
			return err
		}
	}

	if err := bindEnvs(v, config); err != nil {
		return errors.Wrap(err, "Failed to bind env")
	}

	if err := v.Unmarshal(config); err != nil {
		return errors.Wrap(err, "Failed to unmarshal config")
	}

	return nil
}
