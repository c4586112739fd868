package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 配置 ====================

type GeoConfig struct {
	BaseURL string // 默认 https://nominatim.openstreetmap.org
	Timeout time.Duration
}

// ==================== 数据结构 ====================

// Address 逆地理解析结果
type Address struct {
	DisplayName string `json:"display_name"`
	City        string `json:"city"`
	Suburb      string `json:"suburb"`
	Road        string `json:"road"`
	Country     string `json:"country"`
}

// nominatim 响应结构（只取用到的字段）
type reverseGeoResp struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Suburb  string `json:"suburb"`
		Road    string `json:"road"`
		Country string `json:"country"`
	} `json:"address"`
}

// ==================== 服务实现 ====================

// GeoService 逆地理编码服务
// 发帖流程外围使用：按坐标解析地址展示给用户。
// 失败按普通错误返回，不做降级，也不影响表单其他部分。
type GeoService struct {
	client  *resty.Client
	baseURL string
}

// NewGeoService 创建逆地理编码服务
func NewGeoService(cfg *GeoConfig) *GeoService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Ejar-Go-App/1.0")

	return &GeoService{client: client, baseURL: cfg.BaseURL}
}

// ReverseGeocode 按坐标解析地址
func (s *GeoService) ReverseGeocode(ctx context.Context, lat, lon float64) (*Address, error) {
	var result reverseGeoResp

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    fmt.Sprintf("%f", lat),
			"lon":    fmt.Sprintf("%f", lon),
		}).
		SetResult(&result).
		Get(s.baseURL + "/reverse")
	if err != nil {
		return nil, fmt.Errorf("逆地理请求失败: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("逆地理请求失败: status %d", resp.StatusCode())
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}

	return &Address{
		DisplayName: result.DisplayName,
		City:        city,
		Suburb:      result.Address.Suburb,
		Road:        result.Address.Road,
		Country:     result.Address.Country,
	}, nil
}
