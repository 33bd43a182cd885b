package environment

import "github.com/spf13/viper"

// ViperSource reads the process environment through viper. Empty variables
// count as absent.
type ViperSource struct {
	v *viper.Viper
}

// NewViperSource returns a Source bound to the process environment.
func NewViperSource() *ViperSource {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{EnvRuntimeMode, EnvLogLevel, EnvRetentionDays} {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
	return &ViperSource{v: v}
}

// Lookup implements Source.
func (s *ViperSource) Lookup(key string) (string, bool) {
	if !s.v.IsSet(key) {
		return "", false
	}
	return s.v.GetString(key), true
}
