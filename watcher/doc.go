// Package watcher collects autosaves while the game runs. It watches the
// save directory, debounces the burst of filesystem events one save
// produces, and copies each autosave into the collection directory named
// after its in-game date so the pipeline can process a whole campaign
// chronologically.
package watcher
