package metadata

// Canonical sampler names. The renderer sets a matching has_<name> flag for
// each of them.
const (
	DiffuseTexture = "diffuse_texture"
	BumpTexture    = "bump_texture"
	OpacityTexture = "opacity_texture"
	CubemapTexture = "cubemap_texture"
)

var CanonicalTextureSlots = []string{DiffuseTexture, BumpTexture, OpacityTexture, CubemapTexture}

/** @brief A backend texture name. 0 is never a valid texture. */
type TextureHandle uint32

/**
 * @brief Represents various types of textures.
 */
type TextureKind int

const (
	/** @brief A standard two-dimensional texture. */
	Texture2D TextureKind = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureCubeMap
)

func (k TextureKind) String() string {
	switch k {
	case Texture2D:
		return "2d"
	case TextureCubeMap:
		return "cube"
	}
	return "unknown"
}

type TextureBinding struct {
	Handle TextureHandle
	Kind   TextureKind
}

type NamedBinding struct {
	Name    string
	Binding TextureBinding
}

// CubemapFaces lists the face file names in the order GL expects them
// (TEXTURE_CUBE_MAP_POSITIVE_X onwards).
var CubemapFaces = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}
