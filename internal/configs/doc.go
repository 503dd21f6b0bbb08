// Package configs persists the key registry: ordered lists of public and
// private key file paths with an optional default selection for each.
//
// The registry lives at <user config dir>/archrypt/config.toml and is the
// only state archrypt keeps between runs. It stores paths, never key
// bytes; the keys themselves stay wherever the user put them.
//
// Commands load the registry, apply one mutation, and save it back. The
// encryption pipeline receives a resolved key path from its caller and
// never touches this package.
package configs
