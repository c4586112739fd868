package service

import (
	"testing"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

const amenityUUID = "7b8e1a2c-4d5f-4e6a-9b0c-1d2e3f4a5b6c"

func TestAmenityKey_PreferenceOrder(t *testing.T) {
	tests := []struct {
		name          string
		amenity       model.Amenity
		usingFallback bool
		want          string
	}{
		{
			name: "远程数据且 ID 为 UUID 时直接用 ID",
			amenity: model.Amenity{
				BaseModel: model.BaseModel{ID: amenityUUID},
				Name:      "Parking", Slug: "parking",
			},
			want: amenityUUID,
		},
		{
			name: "兜底数据即使 ID 为 UUID 也退到 slug",
			amenity: model.Amenity{
				BaseModel: model.BaseModel{ID: amenityUUID},
				Name:      "Parking", Slug: "parking",
			},
			usingFallback: true,
			want:          "parking",
		},
		{
			name: "远程数据 ID 非 UUID 时退到 slug",
			amenity: model.Amenity{
				BaseModel: model.BaseModel{ID: "legacy-17"},
				Name:      "Parking", Slug: "parking",
			},
			want: "parking",
		},
		{
			name:          "无 slug 时名称 slug 化",
			amenity:       model.Amenity{Name: "Air Conditioning"},
			usingFallback: true,
			want:          "air-conditioning",
		},
		{
			name:          "slug 与名称都缺时保留原始 ID",
			amenity:       model.Amenity{BaseModel: model.BaseModel{ID: "raw-42"}},
			usingFallback: true,
			want:          "raw-42",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AmenityKey(tc.amenity, tc.usingFallback); got != tc.want {
				t.Fatalf("AmenityKey = %q, want %q", got, tc.want)
			}
		})
	}
}

// 同一 (设施, 降级标志) 的键必须恒等，选择集合才能跨过滤/重载保持有效
func TestAmenityKey_Stable(t *testing.T) {
	a := model.Amenity{Name: "Swimming Pool", Slug: "swimming-pool"}
	a.ID = amenityUUID

	for _, fallback := range []bool{false, true} {
		first := AmenityKey(a, fallback)
		for i := 0; i < 10; i++ {
			if got := AmenityKey(a, fallback); got != first {
				t.Fatalf("键不稳定: fallback=%v 第 %d 次得到 %q, 首次 %q", fallback, i, got, first)
			}
		}
	}
}

func TestAmenityNameByKey(t *testing.T) {
	indoor := model.Amenity{Name: "Parking", Slug: "parking"}
	indoor.ID = amenityUUID
	nearby := model.Amenity{Name: "School", Slug: "school"}
	nearby.ID = "school"

	bundle := &CatalogBundle{
		IndoorAmenities: []model.Amenity{indoor},
		NearbyAmenities: []model.Amenity{nearby},
	}

	if got := AmenityNameByKey(bundle, amenityUUID); got != "Parking" {
		t.Fatalf("室内池解析失败: got %q", got)
	}
	if got := AmenityNameByKey(bundle, "school"); got != "School" {
		t.Fatalf("周边池解析失败: got %q", got)
	}
	// 未知键不报错，退化为键本身
	if got := AmenityNameByKey(bundle, "gone"); got != "gone" {
		t.Fatalf("未知键应原样返回: got %q", got)
	}
}

func TestAmenityIDByKey(t *testing.T) {
	a := model.Amenity{Name: "Parking", Slug: "parking"}
	a.ID = amenityUUID
	bundle := &CatalogBundle{IndoorAmenities: []model.Amenity{a}}

	id, ok := AmenityIDByKey(bundle, amenityUUID)
	if !ok || id != amenityUUID {
		t.Fatalf("应解析到后端 ID: id=%q ok=%v", id, ok)
	}
	if _, ok := AmenityIDByKey(bundle, "missing"); ok {
		t.Fatal("未知键不应解析出 ID")
	}
}
