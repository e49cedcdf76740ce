package kubernetes

import (
	"path"
	"strconv"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// DeploymentPath returns the flat Deployment manifest path of a model.
func DeploymentPath(safeName string) string {
	return path.Join(defaults.K8sDir, "deployment-"+safeName+".yaml")
}

// DeploymentName returns the name shared by the Deployment, its pods' app
// label and its container.
func DeploymentName(safeName string) string {
	return "ramalama-" + safeName
}

// ServerArgs returns the llama-server arguments in their fixed order.
func ServerArgs(safeName string, p internal.ServerParams) []string {
	return []string{
		defaults.ServeBinary,
		"--port", p.Port,
		"--model", p.ModelFile,
		"--no-warmup",
		"--jinja",
		"--log-colors",
		"--alias", internal.Alias(safeName),
		"--ctx-size", p.CtxSize,
		"--temp", p.Temp,
		"--cache-reuse", p.CacheReuse,
		"-ngl", defaults.GPULayers,
		"--threads", p.Threads,
		"--top-k", p.TopK,
		"--top-p", p.TopP,
		"--min-p", p.MinP,
		"--host", p.Host,
	}
}

func containerPort(m *config.Resolved, p internal.ServerParams) (int32, error) {
	port, err := strconv.ParseInt(p.Port, 10, 32)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidConfig, "port must be an integer between 1 and 65535",
			map[string]interface{}{"model": m.Key(), "port": p.Port})
	}
	return int32(port), nil
}

// BuildDeployment builds the flat Deployment of m.
func BuildDeployment(m *config.Resolved) (*appsv1.Deployment, error) {
	safe := m.SafeName()
	name := DeploymentName(safe)
	params := internal.ResolveServerParams(m)

	image, err := internal.Image(m)
	if err != nil {
		return nil, err
	}
	port, err := containerPort(m, params)
	if err != nil {
		return nil, err
	}
	resources, err := resourceRequirements(m)
	if err != nil {
		return nil, err
	}

	labels := map[string]string{
		"app":       name,
		"component": defaults.ComponentLabel,
	}

	container := corev1.Container{
		Name:    name,
		Image:   image,
		Command: []string{defaults.ServeCommand},
		Args:    ServerArgs(safe, params),
		Ports: []corev1.ContainerPort{{
			ContainerPort: port,
		}},
		SecurityContext: &corev1.SecurityContext{
			AllowPrivilegeEscalation: ptr.To(false),
			Capabilities: &corev1.Capabilities{
				Drop: []corev1.Capability{"ALL"},
			},
		},
	}
	if resources != nil {
		container.Resources = *resources
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To[int32](1),
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": name},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					SecurityContext: &corev1.PodSecurityContext{
						RunAsNonRoot: ptr.To(true),
						SeccompProfile: &corev1.SeccompProfile{
							Type: corev1.SeccompProfileTypeRuntimeDefault,
						},
					},
					Containers: []corev1.Container{container},
				},
			},
		},
	}, nil
}

func renderDeployment(m *config.Resolved) ([]artifact.File, error) {
	d, err := BuildDeployment(m)
	if err != nil {
		return nil, err
	}
	content, err := marshal(d)
	if err != nil {
		return nil, err
	}
	return []artifact.File{{
		Path:    DeploymentPath(m.SafeName()),
		Kind:    artifact.KindKubernetes,
		Content: content,
	}}, nil
}
