package defaults

import "os"

// Paths, relative to the repository root.
const (
	ConfigPath           = "models/models.yaml"
	RepoRoot             = "."
	WorkflowPath         = ".github/workflows/build-images.yml"
	WorkflowBackupSuffix = ".backup"
	ChecksumsFile        = "checksums.txt"

	ContainerfilesDir = "containerfiles"
	K8sDir            = "k8s"
	ModelsDir         = "models"
)

// File permissions for generated output.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// Image and container defaults.
const (
	RegistryPath   = "ghcr.io/kush-gupt"
	ImageTag       = "latest"
	Maintainer     = "Unknown"
	ModelDir       = "/models"
	ModelFile      = "/models/model.gguf"
	ServeCommand   = "/usr/libexec/ramalama/ramalama-serve-core"
	ServeBinary    = "llama-server"
	NonRootUID     = 1001
	GPULayers      = "-1"
	ComponentLabel = "llm-server"
)

// llama-server parameter defaults, as literal flag values.
const (
	Port       = "8080"
	CtxSize    = "4096"
	Temp       = "0.7"
	CacheReuse = "256"
	Threads    = "14"
	TopK       = "40"
	TopP       = "0.9"
	MinP       = "0"
	Host       = "0.0.0.0"
)

// Resource defaults used when a requests or limits block omits a field.
const (
	RequestsMemory = "4Gi"
	RequestsCPU    = "2"
	LimitsMemory   = "8Gi"
	LimitsCPU      = "4"
)

// Kubernetes modes.
const (
	K8sModeDeployment = "deployment"
	K8sModeKustomize  = "kustomize"
)

// Lightspeed overlay defaults.
const (
	LightspeedNamespace = "openshift-lightspeed"
)
