package vulkan

/**
 * @brief Max number of simultaneously uploaded geometries.
 */
const VULKAN_MAX_GEOMETRY_COUNT uint32 = 256
