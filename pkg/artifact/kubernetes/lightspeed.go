package kubernetes

import (
	"fmt"
	"path"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"sigs.k8s.io/kustomize/api/types"
	"sigs.k8s.io/kustomize/kyaml/resid"
	"sigs.k8s.io/yaml"
)

const (
	olsGroup   = "ols.openshift.io"
	olsVersion = "v1alpha1"
	olsKind    = "OLSConfig"
	olsName    = "cluster"

	providerURLPath   = "/spec/llm/providers/0/url"
	providerModelPath = "/spec/llm/providers/0/models/0/name"
)

// LightspeedDir returns the Lightspeed overlay directory of a model.
func LightspeedDir(safeName string) string {
	return path.Join(defaults.K8sDir, "lightspeed", "overlays", safeName)
}

// ServiceURL returns the OpenAI-compatible endpoint of the model's service.
func ServiceURL(safeName, namespace, port string) string {
	return fmt.Sprintf("http://%s-ramalama.%s.svc.cluster.local:%s/v1", safeName, namespace, port)
}

type jsonPatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

// BuildLightspeedKustomization builds the overlay, deployed to namespace,
// that points the OLSConfig provider at the model's service. The service
// lives in the model's own namespace when one is set.
func BuildLightspeedKustomization(m *config.Resolved, namespace string) (*types.Kustomization, error) {
	safe := m.SafeName()
	params := internal.ResolveServerParams(m)
	serviceNamespace := m.String(internal.KeyNamespace, namespace)
	if serviceNamespace == "" {
		serviceNamespace = namespace
	}

	ops := []jsonPatchOp{
		{Op: "replace", Path: providerURLPath, Value: ServiceURL(safe, serviceNamespace, params.Port)},
		{Op: "replace", Path: providerModelPath, Value: internal.Alias(safe)},
	}
	patch, err := yaml.Marshal(ops)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to serialize lightspeed patch", err)
	}

	return &types.Kustomization{
		TypeMeta: types.TypeMeta{
			APIVersion: types.KustomizationVersion,
			Kind:       types.KustomizationKind,
		},
		Resources: []string{basePath},
		Namespace: namespace,
		Patches: []types.Patch{{
			Patch: string(patch),
			Target: &types.Selector{
				ResId: resid.ResId{
					Gvk:  resid.Gvk{Group: olsGroup, Version: olsVersion, Kind: olsKind},
					Name: olsName,
				},
			},
		}},
	}, nil
}

func renderLightspeed(m *config.Resolved, namespace string) (artifact.File, error) {
	k, err := BuildLightspeedKustomization(m, namespace)
	if err != nil {
		return artifact.File{}, err
	}
	content, err := marshal(k)
	if err != nil {
		return artifact.File{}, err
	}
	return artifact.File{
		Path:    path.Join(LightspeedDir(m.SafeName()), kustomizationFile),
		Kind:    artifact.KindKubernetes,
		Content: content,
	}, nil
}
