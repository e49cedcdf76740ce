// Package artifact defines the renderer contract shared by every generated
// artifact kind and an ordered registry of renderers.
//
// Renderers live in subpackages:
//
//   - containerfile: containerfiles/Containerfile-<safe>
//   - kubernetes: k8s/deployment-<safe>.yaml, or k8s/models/<safe>/ overlays
//     plus the optional k8s/lightspeed/overlays/<safe>/ overlay
//   - flatconfig: models/<safe>.conf
//   - pipeline: the CI job stanza, returned as a value rather than a file
//
// A renderer never writes to disk. It returns File values whose paths are
// relative to the repository root; the generator decides where and whether
// to write them.
package artifact
