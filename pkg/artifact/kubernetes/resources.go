package kubernetes

import (
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

const (
	keyRequests = "requests"
	keyLimits   = "limits"
	keyMemory   = "memory"
	keyCPU      = "cpu"
)

// resourceRequirements converts the merged resources mapping. It returns nil
// when the model declares neither a requests nor a limits block. Only the requests and limits blocks
// present in the mapping are emitted; inside a block a missing memory or cpu
// falls back to the defaults.
func resourceRequirements(m *config.Resolved) (*corev1.ResourceRequirements, error) {
	res, ok := m.Resources()
	if !ok {
		return nil, nil
	}

	if !res.Has(keyRequests) && !res.Has(keyLimits) {
		return nil, nil
	}

	reqs := &corev1.ResourceRequirements{}
	var err error
	if block, ok := res.Get(keyRequests); ok {
		if reqs.Requests, err = resourceList(m, keyRequests, block, defaults.RequestsMemory, defaults.RequestsCPU); err != nil {
			return nil, err
		}
	}
	if block, ok := res.Get(keyLimits); ok {
		if reqs.Limits, err = resourceList(m, keyLimits, block, defaults.LimitsMemory, defaults.LimitsCPU); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

func resourceList(m *config.Resolved, name string, block *config.Value, defMemory, defCPU string) (corev1.ResourceList, error) {
	if block.IsNull() {
		block = config.Mapping()
	}
	if !block.IsMapping() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "resources block must be a mapping",
			map[string]interface{}{"model": m.Key(), "block": name})
	}

	text := func(key, def string) string {
		v, ok := block.Get(key)
		if !ok || !v.IsScalar() {
			return def
		}
		return v.Text()
	}

	list := corev1.ResourceList{}
	for _, entry := range []struct {
		name corev1.ResourceName
		val  string
	}{
		{corev1.ResourceMemory, text(keyMemory, defMemory)},
		{corev1.ResourceCPU, text(keyCPU, defCPU)},
	} {
		q, err := resource.ParseQuantity(entry.val)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid resource quantity", err,
				map[string]interface{}{"model": m.Key(), "block": name, "resource": string(entry.name), "value": entry.val})
		}
		list[entry.name] = q
	}
	return list, nil
}
