// Package config manages user-level settings stored at ~/.regui/config.yaml.
// Values can be overridden by REGUI_* environment variables, which are also
// read from a .env file in the working directory when present.
package config
