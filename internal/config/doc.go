// Package config holds the scan defaults (skip lists, extensions) and the
// YAML file layer. Files are found next to the scan root or under the user
// config directory; Merge applies them in precedence order.
package config
