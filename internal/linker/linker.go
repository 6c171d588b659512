// Package linker activates mods by linking their directories into the game
// directory.
package linker

// Linker deploys and undeploys mod directories into the game directory
type Linker interface {
	Deploy(src, dst string) error
	Undeploy(dst string) error
	IsDeployed(dst string) (bool, error)

	// Sweep removes every link directly inside root
	Sweep(root string) (int, error)
	// Sync sweeps root, then links each source into it by base name
	Sync(root string, sources []string) error
	// Linked lists the names of links directly inside root
	Linked(root string) ([]string, error)
}
