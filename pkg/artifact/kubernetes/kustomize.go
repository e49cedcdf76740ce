package kubernetes

import (
	"fmt"
	"path"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/kustomize/api/types"
)

const (
	kustomizationFile = "kustomization.yaml"
	patchFile         = "model-patch.yaml"
	basePath          = "../../base"

	// Names used by the shared base the overlays build on.
	baseDeploymentName = "ramalama"
	baseContainerName  = "ramalama"
	baseImageName      = "ramalama-model"
	configMapName      = "model-config"

	labelInstance = "app.kubernetes.io/instance"
	labelName     = "app.kubernetes.io/name"
)

// OverlayDir returns the overlay directory of a model.
func OverlayDir(safeName string) string {
	return path.Join(defaults.K8sDir, "models", safeName)
}

// ConfigLiterals returns the model-config ConfigMap literals, in a fixed order.
func ConfigLiterals(safeName string, p internal.ServerParams) []string {
	pairs := [][2]string{
		{"PORT", p.Port},
		{"MODEL_FILE", p.ModelFile},
		{"MODEL_ALIAS", internal.Alias(safeName)},
		{"CTX_SIZE", p.CtxSize},
		{"TEMP", p.Temp},
		{"CACHE_REUSE", p.CacheReuse},
		{"THREADS", p.Threads},
		{"TOP_K", p.TopK},
		{"TOP_P", p.TopP},
		{"MIN_P", p.MinP},
		{"HOST", p.Host},
	}
	out := make([]string, len(pairs))
	for i, kv := range pairs {
		out[i] = fmt.Sprintf("%s=%s", kv[0], kv[1])
	}
	return out
}

// BuildKustomization builds the overlay kustomization of m. withPatch adds
// the model-patch.yaml entry.
func BuildKustomization(m *config.Resolved, withPatch bool) (*types.Kustomization, error) {
	safe := m.SafeName()
	params := internal.ResolveServerParams(m)

	repo, err := internal.ImageRepository(m)
	if err != nil {
		return nil, err
	}

	k := &types.Kustomization{
		TypeMeta: types.TypeMeta{
			APIVersion: types.KustomizationVersion,
			Kind:       types.KustomizationKind,
		},
		Resources:  []string{basePath},
		NamePrefix: safe + "-",
		Namespace:  m.String(internal.KeyNamespace, ""),
		Labels: []types.Label{{
			Pairs: map[string]string{
				labelInstance: safe,
				labelName:     "ramalama",
			},
			IncludeSelectors: true,
		}},
		ConfigMapGenerator: []types.ConfigMapArgs{{
			GeneratorArgs: types.GeneratorArgs{
				Name: configMapName,
				KvPairSources: types.KvPairSources{
					LiteralSources: ConfigLiterals(safe, params),
				},
			},
		}},
		Images: []types.Image{{
			Name:    baseImageName,
			NewName: repo,
			NewTag:  defaults.ImageTag,
		}},
	}

	if withPatch {
		k.Patches = []types.Patch{{Path: patchFile}}
	}

	return k, nil
}

// BuildResourcePatch builds the strategic-merge patch setting the resources
// of the base container.
func BuildResourcePatch(resources corev1.ResourceRequirements) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: baseDeploymentName,
		},
		Spec: appsv1.DeploymentSpec{
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:      baseContainerName,
						Resources: resources,
					}},
				},
			},
		},
	}
}

func renderOverlay(m *config.Resolved) ([]artifact.File, error) {
	dir := OverlayDir(m.SafeName())

	resources, err := resourceRequirements(m)
	if err != nil {
		return nil, err
	}

	k, err := BuildKustomization(m, resources != nil)
	if err != nil {
		return nil, err
	}
	content, err := marshal(k)
	if err != nil {
		return nil, err
	}

	files := []artifact.File{{
		Path:    path.Join(dir, kustomizationFile),
		Kind:    artifact.KindKubernetes,
		Content: content,
	}}

	if resources != nil {
		patch, err := marshal(BuildResourcePatch(*resources))
		if err != nil {
			return nil, err
		}
		files = append(files, artifact.File{
			Path:    path.Join(dir, patchFile),
			Kind:    artifact.KindKubernetes,
			Content: patch,
		})
	}

	return files, nil
}
