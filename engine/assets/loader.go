package assets

import (
	"github.com/google/uuid"
)

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeImage
	ResourceTypeShader
)

// Resource is a loaded asset. Data holds the loader-specific payload: an
// *loaders.ImageData for images, the WGSL source string for shaders.
type Resource struct {
	ID       uuid.UUID
	Name     string
	FullPath string
	Type     ResourceType
	Data     interface{}
}

func newResource(name, path string, resourceType ResourceType, data interface{}) *Resource {
	if name == "" {
		name = uuid.New().String()
	}
	return &Resource{
		ID:       uuid.New(),
		Name:     name,
		FullPath: path,
		Type:     resourceType,
		Data:     data,
	}
}
