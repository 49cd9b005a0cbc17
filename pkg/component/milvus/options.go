package milvus

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Options configures the Milvus connection.
type Options struct {
	Address  string        `json:"address" mapstructure:"address"`
	Username string        `json:"username" mapstructure:"username"`
	Password string        `json:"password" mapstructure:"password"`
	Database string        `json:"database" mapstructure:"database"`
	Timeout  time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewOptions returns options with defaults.
func NewOptions() *Options {
	return &Options{
		Address: "localhost:19530",
		Timeout: 10 * time.Second,
	}
}

// Complete fills in unset fields with defaults.
func (o *Options) Complete() error {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return nil
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Address == "" {
		return fmt.Errorf("milvus address is required")
	}
	return nil
}

// AddFlags adds milvus flags to the flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet, namePrefix string) {
	fs.StringVar(&o.Address, namePrefix+"address", o.Address, "Milvus server address (host:port)")
	fs.StringVar(&o.Username, namePrefix+"username", o.Username, "Milvus username")
	fs.StringVar(&o.Password, namePrefix+"password", o.Password, "Milvus password")
	fs.StringVar(&o.Database, namePrefix+"database", o.Database, "Milvus database name")
	fs.DurationVar(&o.Timeout, namePrefix+"timeout", o.Timeout, "Milvus connection timeout")
}
