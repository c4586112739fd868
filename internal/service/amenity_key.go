package service

import (
	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/pkg/utils"
)

// ==================== 设施键解析 ====================

// AmenityKey 计算设施的稳定选择键
// 远程数据且 ID 是合法 UUID 时直接用 ID；否则依次退化到
// slug -> 名称 slug 化 -> 原始 ID。
// 同一会话内对固定的 (amenity, usingFallback) 必须恒等，
// 选择集合（键的集合）才能在列表过滤/重载之后继续有效。
func AmenityKey(a model.Amenity, usingFallback bool) string {
	if !usingFallback && utils.IsUUID(a.ID) {
		return a.ID
	}
	if a.Slug != "" {
		return a.Slug
	}
	if a.Name != "" {
		return utils.Slugify(a.Name)
	}
	return a.ID
}

// AmenityNameByKey 把选择键翻译回显示名称
// 在当前加载的两个设施池里查找；找不到时退化为原始键字符串，不报错
func AmenityNameByKey(bundle *CatalogBundle, key string) string {
	for _, pool := range [][]model.Amenity{bundle.IndoorAmenities, bundle.NearbyAmenities} {
		for _, a := range pool {
			if AmenityKey(a, bundle.UsingFallback) == key {
				return a.Name
			}
		}
	}
	return key
}

// AmenityIDByKey 反查设施的后端 ID（设施关联写库用）
// 只在键能对应到池内设施时返回其 ID
func AmenityIDByKey(bundle *CatalogBundle, key string) (string, bool) {
	for _, pool := range [][]model.Amenity{bundle.IndoorAmenities, bundle.NearbyAmenities} {
		for _, a := range pool {
			if AmenityKey(a, bundle.UsingFallback) == key {
				return a.ID, true
			}
		}
	}
	return "", false
}
