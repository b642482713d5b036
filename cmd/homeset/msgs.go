package main

// Command descriptions
const (
	rootShort = "Materialize a dotfiles tree into a user's home"
	rootLong  = `homeset materializes a dotfiles source tree into a target user's home
directory during desktop provisioning. The target account must already
exist; homeset places configuration either as per-application symlinks
or as a full mirrored copy, and hands ownership to the target user.`

	linkShort = "Place recognized dotfile categories as symlinks"
	linkLong  = `Link creates symbolic links for each recognized category in the source
tree (terminal emulator, lock screen, window manager, wallpapers) and
copies the user avatar into AccountsService. Unrecognized entries are
ignored.`

	syncShort = "Mirror the whole source tree into .config"
	syncLong  = `Sync recursively mirrors the source tree into the target's .config
directory, deleting destination entries that no longer exist in the
source, then mirrors a wallpapers directory into Pictures.`

	applyShort = "Materialize dotfiles using the configured strategy"

	provisionShort = "Run the configured provisioning steps, then materialize"
	provisionLong  = `Provision executes the command steps from the configuration file in
order (package installs, service enables) and finishes by materializing
the dotfiles tree. Best-effort steps record their failures and the run
continues; other failures abort.`

	genconfigShort = "Print the effective configuration as TOML"

	docsShort = "Show the homeset usage guide"

	versionShort = "Print version information"
)
