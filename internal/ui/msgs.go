package ui

// RefreshMsg is broadcast to every page after a store mutation so views
// rebuild whatever widget state they derive from the store.
type RefreshMsg struct{}
