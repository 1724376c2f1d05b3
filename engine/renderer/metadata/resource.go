package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the asset manager does not index. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Image resource type (png, jpeg, bmp, webp). */
	ResourceTypeImage
	/** @brief GLSL source of a single shader stage. */
	ResourceTypeShader
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeShader:
		return "shader"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource, relative to the asset root. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes, as read from disk. */
	DataSize uint64
	/** @brief The resource data: a string for text and shaders, *image.NRGBA for images. */
	Data interface{}
}

/** @brief Parameters of the image loader. */
type ImageResourceParams struct {
	/** @brief Flip rows so the first row is the bottom of the image, as GL expects. */
	FlipY bool
}
