package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName is used for the default config directory and environment prefix.
const AppName = "stellar-portfolio"

// EnvPrefix is prepended to environment variable names, so the key
// contact.access-key is read from PORTFOLIO_CONTACT_ACCESS_KEY.
const EnvPrefix = "PORTFOLIO"

// Configurable represents a type that can be configured via flags and config files.
type Configurable interface {
	// AddFlags should add command-line flags to the provided FlagSet
	AddFlags(fs *pflag.FlagSet)
}

// ConfigLoader provides common configuration loading functionality.
type ConfigLoader struct {
	configFile   string
	defaults     map[string]any
	flags        *pflag.FlagSet
	envPrefix    string
	dotenvFiles  []string
	preserveFile bool
	strictMode   bool
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		defaults:     make(map[string]any),
		flags:        pflag.CommandLine,
		envPrefix:    EnvPrefix,
		preserveFile: true,
	}
}

// SetConfigFile sets the configuration file path.
func (cl *ConfigLoader) SetConfigFile(configFile string) {
	cl.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (cl *ConfigLoader) SetDefault(key string, value any) {
	cl.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (cl *ConfigLoader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		cl.defaults[key] = value
	}
}

// SetFlagSet selects the flag set whose explicitly set flags override
// everything else. It defaults to pflag.CommandLine.
func (cl *ConfigLoader) SetFlagSet(fs *pflag.FlagSet) {
	cl.flags = fs
}

// SetEnvPrefix changes the environment variable prefix. An empty prefix
// disables environment lookups entirely.
func (cl *ConfigLoader) SetEnvPrefix(prefix string) {
	cl.envPrefix = prefix
}

// SetDotEnvFiles lists .env files to load into the process environment
// before environment variables are consulted. Missing files are skipped.
func (cl *ConfigLoader) SetDotEnvFiles(files ...string) {
	cl.dotenvFiles = files
}

// SetStrictMode enables or disables strict mode for configuration validation.
// In strict mode, unknown configuration fields will cause an error.
func (cl *ConfigLoader) SetStrictMode(strict bool) {
	cl.strictMode = strict
}

// LoadConfig loads configuration with precedence
// defaults < config file < environment < explicit flags.
// The config parameter should be a pointer to the configuration struct to populate.
func (cl *ConfigLoader) LoadConfig(config any) error {
	if err := LoadDotEnv(cl.dotenvFiles...); err != nil {
		return err
	}

	v := viper.New()

	for key, value := range cl.defaults {
		v.SetDefault(key, value)
	}

	if cl.configFile != "" {
		settings, err := readConfigFile(cl.configFile)
		if err != nil {
			return err
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, cl.configFile, err)
		}
	}

	if cl.envPrefix != "" {
		v.SetEnvPrefix(cl.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()
	}

	if cl.flags != nil {
		cl.flags.Visit(func(flag *pflag.Flag) {
			v.Set(flag.Name, flagValue(flag))
		})
	}

	if err := cl.decode(v.AllSettings(), config); err != nil {
		return err
	}

	if cl.preserveFile && cl.configFile != "" {
		// Not every config struct has a ConfigFile field; that is fine.
		_ = setConfigFileField(config, cl.configFile)
	}

	return nil
}

func (cl *ConfigLoader) decode(settings map[string]any, config any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		TagName:          "mapstructure",
		ErrorUnused:      cl.strictMode,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(settings); err != nil {
		errStr := err.Error()
		if cl.configFile != "" && strings.Contains(errStr, "has invalid keys:") {
			errStr = strings.Replace(errStr, "* ''", fmt.Sprintf("* '%s'", cl.configFile), 1)
		}
		return fmt.Errorf("%w: %s", ErrConfigUnmarshal, errStr)
	}
	return nil
}

// readConfigFile reads a config file in any format viper understands and
// expands environment references in its string values.
func readConfigFile(path string) (map[string]any, error) {
	fv := viper.New()
	fv.SetConfigFile(path)
	if err := fv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigFileRead, path, err)
	}
	return expandMap(fv.AllSettings()), nil
}

// flagValue converts a flag to a typed value so that viper does not have to
// guess from its string form.
func flagValue(flag *pflag.Flag) any {
	raw := flag.Value.String()
	switch flag.Value.Type() {
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if val, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return val
		}
	case "int", "int8", "int16", "int32", "int64":
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return val
		}
	case "bool":
		if val, err := strconv.ParseBool(raw); err == nil {
			return val
		}
	case "float32", "float64":
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			return val
		}
	case "stringSlice", "stringArray":
		if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
			return sliceFlag.GetSlice()
		}
	}
	return raw
}

// setConfigFileField sets a ConfigFile field on the config struct using reflection.
func setConfigFileField(config any, configFile string) error {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("%w: got %T", ErrConfigNotPointer, config)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrConfigNotStruct, v.Kind())
	}

	field := v.FieldByName("ConfigFile")
	if !field.IsValid() {
		return nil
	}

	if !field.CanSet() {
		return fmt.Errorf("%w: ConfigFile", ErrConfigFieldNotSet)
	}

	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: ConfigFile is %s", ErrConfigFieldNotString, field.Kind())
	}

	field.SetString(configFile)
	return nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Variables already present in the environment win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("%w %s: %v", ErrDotEnvLoad, file, err)
		}
	}
	return nil
}

// DefaultConfigFile returns the first config file found under the XDG config
// directories, or an empty string if there is none.
func DefaultConfigFile() string {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path, err := xdg.SearchConfigFile(filepath.Join(AppName, name))
		if err == nil {
			return path
		}
	}
	return ""
}

// DefaultDataFile returns a path for name under the XDG data directory,
// creating the parent directory if needed.
func DefaultDataFile(name string) (string, error) {
	path, err := xdg.DataFile(filepath.Join(AppName, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDataPath, err)
	}
	return path, nil
}

// StandardConfigPattern provides a convenient way to implement the standard config pattern.
func StandardConfigPattern(config Configurable, configFile string, defaults map[string]any) error {
	loader := NewConfigLoader()
	loader.SetConfigFile(configFile)
	if defaults != nil {
		loader.SetDefaults(defaults)
	}

	return loader.LoadConfig(config)
}
