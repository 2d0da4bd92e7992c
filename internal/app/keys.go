package app

import "github.com/promanage/promanage/internal/keys"

// KeyMap aliases the shared keybinding set so callers of this package do not
// need to import internal/keys directly.
type KeyMap = keys.KeyMap

// DefaultKeyMap returns the default application keybindings.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
