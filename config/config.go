package config

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"runtime"
	"strings"

	wildcard "github.com/gobwas/glob"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/macrat/foxroute/glob"
)

const (
	DefaultFile     = "config.json"
	DefaultLogLevel = "info"
)

func DefaultProcessName() string {
	if runtime.GOOS == "windows" {
		return "firefox.exe"
	}
	return "firefox"
}

type BrowserConfig struct {
	Path        string `json:"path,omitempty"    flag:"browser"`
	ProcessName string `json:"process_name"      flag:"process-name"`
	Profile     string `json:"profile,omitempty" flag:"profile"`
}

type LogConfig struct {
	File  string `json:"file,omitempty" flag:"log-file"`
	Level string `json:"level"          flag:"log-level"`
}

type MetricsConfig struct {
	File string `json:"file,omitempty" flag:"metrics-file"`
}

type Config struct {
	IgnoredURLs        PatternSet    `json:"ignored_urls"`
	IgnoredURLsRegex   RegexpSet     `json:"ignored_urls_regex"`
	Browser            BrowserConfig `json:"browser"`
	Log                LogConfig     `json:"log"`
	Metrics            MetricsConfig `json:"metrics"`
	DisableLinkOpening bool          `json:"disable_link_opening" flag:"dry-run"`

	// File is the path of the loaded configuration file, or empty if none was read.
	File string `json:"-"`
}

func TakeOptions(prefix string, typ reflect.Type, result map[string]string) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		flag := f.Tag.Get("flag")

		if name != "" && name != "-" {
			key := prefix + name

			if flag != "" {
				result[key] = flag
			} else if f.Type.Kind() == reflect.Struct {
				TakeOptions(key+".", f.Type, result)
			}
		}
	}
}

func BindFlags(vip *viper.Viper, flags *pflag.FlagSet) {
	options := map[string]string{}
	TakeOptions("", reflect.TypeOf(Config{}), options)
	for k, v := range options {
		f := flags.Lookup(v)
		if f == nil {
			panic(fmt.Sprintf("flag %s is not found", v))
		}
		vip.BindPFlag(k, f)
	}
}

func newViper() *viper.Viper {
	var replacer EnvReplacer
	vip := viper.NewWithOptions(viper.EnvKeyReplacer(replacer))

	vip.SetDefault("browser.process_name", DefaultProcessName())
	vip.SetDefault("log.level", DefaultLogLevel)

	return vip
}

// unmarshal decodes vip into c. Every glob and regular expression is compiled while decoding;
// if any of them is invalid, c is left untouched and all failures are returned as a ParseErrorSet.
func (c *Config) unmarshal(vip *viper.Viper) error {
	var decoded Config
	var invalid ParseErrorSet

	err := vip.Unmarshal(&decoded, func(m *mapstructure.DecoderConfig) {
		m.TagName = "json"
		m.DecodeHook = func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
			if f.Kind() != reflect.String {
				return data, nil
			}
			result := reflect.New(t).Interface()
			unmarshaller, ok := result.(encoding.TextUnmarshaler)
			if !ok {
				return data, nil
			}
			if err := unmarshaller.UnmarshalText([]byte(data.(string))); err != nil {
				invalid = append(invalid, err)
				return nil, err
			}
			return result, nil
		}
	})
	if len(invalid) > 0 {
		return invalid
	}
	if err != nil {
		return err
	}

	for _, p := range decoded.IgnoredURLs {
		if glob.HasWildcardRun(p.String()) {
			log.Warn().
				Str("glob", p.String()).
				Msg("three or more \"*\" in a row are read as \"**\" followed by \"*\"")
		}
	}

	decoded.File = c.File
	*c = decoded

	return nil
}

type EnvReplacer struct{}

func (r EnvReplacer) Replace(s string) string {
	return strings.ReplaceAll(s, ".", "_")
}

// Load reads the configuration file and merges flags and FOXROUTE_* environment variables over it.
//
// If file is empty, FOXROUTE_CONFIG or DefaultFile is used.
// A missing or blank file is not an error; it yields a configuration that filters nothing.
func (c *Config) Load(file string, flags *pflag.FlagSet) error {
	vip := newViper()

	if flags != nil {
		BindFlags(vip, flags)
	}
	vip.SetEnvPrefix("FOXROUTE")
	vip.AutomaticEnv()

	if file == "" {
		file = os.Getenv("FOXROUTE_CONFIG")
	}
	if file == "" {
		file = DefaultFile
	}

	raw, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", file).Msg("config file not found")
		c.File = ""
	case err != nil:
		return err
	case len(bytes.TrimSpace(raw)) == 0:
		log.Debug().Str("path", file).Msg("config file is empty")
		c.File = ""
	default:
		vip.SetConfigType("json")
		if err := vip.ReadConfig(bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		log.Debug().Str("path", file).Msg("config file found")
		c.File = file
	}

	return c.unmarshal(vip)
}

func (c *Config) ReadReader(config io.Reader) error {
	vip := newViper()

	vip.SetConfigType("json")

	if err := vip.ReadConfig(config); err != nil {
		return err
	}

	return c.unmarshal(vip)
}

func (c *Config) Validate() error {
	var es ParseErrorSet

	if c.Browser.ProcessName == "" {
		es = append(es, errors.New("--process-name: Browser process name can't set empty."))
	} else if _, err := wildcard.Compile(c.Browser.ProcessName); err != nil {
		es = append(es, fmt.Errorf("--process-name: Invalid process name pattern %#v: %s", c.Browser.ProcessName, err))
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		es = append(es, fmt.Errorf("--log-level: Unknown log level %#v.", c.Log.Level))
	}

	if len(es) > 0 {
		return es
	}
	return nil
}

func (c *Config) AsJSON() (string, error) {
	t, err := json.MarshalIndent(*c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(t), nil
}
