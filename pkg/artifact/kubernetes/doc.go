// Package kubernetes renders the Kubernetes artifacts of a model.
//
// Two modes are supported:
//
//   - deployment: a single apps/v1 Deployment at k8s/deployment-<safe>.yaml
//   - kustomize: an overlay at k8s/models/<safe>/kustomization.yaml on top of
//     a shared ../../base, plus a strategic-merge model-patch.yaml carrying the
//     resources block when the model declares one
//
// The mode comes from the merged k8s_mode key unless the renderer is built
// with WithMode, which overrides every model.
//
// In both modes, a model with lightspeed.enabled also gets an overlay at
// k8s/lightspeed/overlays/<safe>/kustomization.yaml that points the
// OLSConfig provider at the model's in-cluster service.
//
// Objects are built from the k8s.io/api and sigs.k8s.io/kustomize/api types
// and serialized with sigs.k8s.io/yaml. Null fields and empty objects left
// by zero-valued structs are dropped before serialization.
package kubernetes
