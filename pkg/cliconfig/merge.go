package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied, unless SetFields marks the
// key as explicitly set.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if isSet(source, "endpoint", source.Endpoint != "") {
		target.Endpoint = source.Endpoint
		target.Sources["endpoint"] = sourceType
	}
	if isSet(source, "secret", source.Secret != "") {
		target.Secret = source.Secret
		target.Sources["secret"] = sourceType
	}
	if isSet(source, "secretFile", source.SecretFile != "") {
		target.SecretFile = source.SecretFile
		target.Sources["secretFile"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if source.Method != "" {
		target.Method = source.Method
		target.Sources["method"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	// For booleans, checking `if source.X` cannot detect an explicit false.
	if isSet(source, "json", source.JSON) {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// isSet reports whether a field identified by its YAML key should be merged.
// When SetFields is available it decides; otherwise only non-zero values count.
func isSet(cfg *CLIConfig, yamlKey string, nonZero bool) bool {
	if cfg.SetFields != nil && cfg.SetFields[yamlKey] {
		return true
	}
	return nonZero
}
