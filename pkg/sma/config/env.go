package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/copyninja277/Sma-app/pkg/sma/internalerr"
)

// ApplyEnv overlays SMA_* environment variables onto c.
//
//	SMA_ADDR, SMA_ALLOWED_ORIGINS (comma separated), SMA_REQUEST_TIMEOUT,
//	SMA_LOG_LEVEL, SMA_LOG_FORMAT, SMA_SEED, SMA_MAX_FEATURES,
//	SMA_RENDER_IMAGES, SMA_LEXICON_PATH, SMA_STOPLIST_PATH,
//	SMA_<PLATFORM>_PATH, SMA_<PLATFORM>_DSN
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("SMA_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup("SMA_ALLOWED_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	if v, ok := lookup("SMA_REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("SMA_REQUEST_TIMEOUT", err)
		}
		c.Server.RequestTimeout = d
	}
	if v, ok := lookup("SMA_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("SMA_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup("SMA_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("SMA_SEED", err)
		}
		c.Analysis.Seed = n
	}
	if v, ok := lookup("SMA_MAX_FEATURES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("SMA_MAX_FEATURES", err)
		}
		c.Analysis.MaxFeatures = n
	}
	if v, ok := lookup("SMA_RENDER_IMAGES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("SMA_RENDER_IMAGES", err)
		}
		c.Analysis.RenderImages = b
	}
	if v, ok := lookup("SMA_LEXICON_PATH"); ok {
		c.Sentiment.LexiconPath = v
	}
	if v, ok := lookup("SMA_STOPLIST_PATH"); ok {
		c.Stoplist.Path = v
	}
	for name, src := range c.Sources {
		prefix := "SMA_" + strings.ToUpper(name) + "_"
		if v, ok := lookup(prefix + "PATH"); ok {
			src.Path = v
		}
		if v, ok := lookup(prefix + "DSN"); ok {
			src.DSN = v
		}
		c.Sources[name] = src
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envError(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, key, err)
}
