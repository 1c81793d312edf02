package providers

import (
	"errors"

	"github.com/gookit/validate"

	"visitors/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Cache.Enabled && c.conf.Cache.Size <= 0 {
		return errors.New("cache.size must be positive when the cache is enabled")
	}
	return nil
}
