package service

import (
	"strings"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

// ==================== 分类判定 ====================

// CategoryClass 封闭的分类变体标签
// 判定只在 Classify 里做一次，其余代码一律 switch 这个标签，
// 不允许在别处重复跑名称启发式
type CategoryClass string

const (
	ClassPhones      CategoryClass = "phones"
	ClassLaptops     CategoryClass = "laptops"
	ClassElectronics CategoryClass = "electronics" // 泛电子（非手机非笔记本）
	ClassVehicles    CategoryClass = "vehicles"
	ClassProperty    CategoryClass = "property"
	ClassNone        CategoryClass = "none"
)

// Classify 判定分类属于哪个字段模板变体
// 先按 type 字段精确匹配，再用小写名称的子串做细分。
// 远程分类和兜底分类结构相同，这里不区分来源。
func Classify(category *model.Category) CategoryClass {
	if category == nil {
		return ClassNone
	}

	name := strings.ToLower(category.Name)

	switch category.Type {
	case model.CategoryTypeVehicles:
		return ClassVehicles
	case model.CategoryTypeProperty:
		return ClassProperty
	case model.CategoryTypeElectronics:
		// 电子类按名称细分：手机 / 笔记本 / 泛电子
		if strings.Contains(name, "phone") {
			return ClassPhones
		}
		if strings.Contains(name, "laptop") {
			return ClassLaptops
		}
		return ClassElectronics
	}

	// type 缺失或未知时退回纯名称启发式
	switch {
	case strings.Contains(name, "phone"):
		return ClassPhones
	case strings.Contains(name, "laptop"):
		return ClassLaptops
	case strings.Contains(name, "car"), strings.Contains(name, "vehicle"):
		return ClassVehicles
	}

	return ClassNone
}
