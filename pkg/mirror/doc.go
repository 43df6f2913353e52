// Package mirror keeps a directory of bare mirror clones in sync with a list
// of remote repositories. The reconciler walks the repository descriptors in
// order and either clones a new mirror or updates an existing one, driving
// the external git client through the GitClient interface.
package mirror
