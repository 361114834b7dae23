package ir

// StorageFormat names the texel format of a storage texture binding.
// It mirrors WGSL's texel format set and is carried on ImageType so a
// backend can declare the concrete SPIR-V image format a storage image
// requires without re-deriving it from scalar width and channel count.
type StorageFormat uint8

const (
	StorageFormatUnknown StorageFormat = iota

	StorageFormatR8Unorm
	StorageFormatR8Snorm
	StorageFormatR8Uint
	StorageFormatR8Sint

	StorageFormatR16Uint
	StorageFormatR16Sint
	StorageFormatR16Float
	StorageFormatR16Unorm
	StorageFormatR16Snorm
	StorageFormatRg8Unorm
	StorageFormatRg8Snorm
	StorageFormatRg8Uint
	StorageFormatRg8Sint

	StorageFormatR32Uint
	StorageFormatR32Sint
	StorageFormatR32Float
	StorageFormatRg16Uint
	StorageFormatRg16Sint
	StorageFormatRg16Float
	StorageFormatRg16Unorm
	StorageFormatRg16Snorm
	StorageFormatRgba8Unorm
	StorageFormatRgba8Snorm
	StorageFormatRgba8Uint
	StorageFormatRgba8Sint
	StorageFormatBgra8Unorm

	StorageFormatRgb10a2Uint
	StorageFormatRgb10a2Unorm
	StorageFormatRg11b10Ufloat

	StorageFormatRg32Uint
	StorageFormatRg32Sint
	StorageFormatRg32Float
	StorageFormatRgba16Uint
	StorageFormatRgba16Sint
	StorageFormatRgba16Float
	StorageFormatRgba16Unorm
	StorageFormatRgba16Snorm

	StorageFormatRgba32Uint
	StorageFormatRgba32Sint
	StorageFormatRgba32Float
)
