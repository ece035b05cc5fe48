package generator

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func price(v float64) *float64 { return &v }

// DefaultCatalog returns the built-in ten-product electronics catalog.
func DefaultCatalog() []domain.ProductTemplate {
	return []domain.ProductTemplate{
		{
			SKU: "LAPTOP-MBP-16-M3", Name: `MacBook Pro 16" M3 Max`,
			Category: "Electronics", Subcategory: "Laptops", Brand: "Apple",
			Price: 3499.00, CompareAtPrice: price(3999.00),
			Description: "Powerful laptop with M3 Max chip, perfect for professionals",
			Tags:        []string{"laptop", "apple", "professional", "sale", "m3"},
			Specifications: map[string]any{
				"processor": "Apple M3 Max", "ram": "36GB", "storage": "1TB SSD",
				"display": "16-inch Liquid Retina XDR", "graphics": "Integrated",
			},
			Stock: 25, Featured: true,
		},
		{
			SKU: "LAPTOP-DELL-XPS13", Name: "Dell XPS 13",
			Category: "Electronics", Subcategory: "Laptops", Brand: "Dell",
			Price:       1299.99,
			Description: "Compact and powerful ultrabook",
			Tags:        []string{"laptop", "ultrabook", "dell", "portable"},
			Specifications: map[string]any{
				"processor": "Intel Core i7", "ram": "16GB", "storage": "512GB SSD", "display": "13.3-inch FHD",
			},
			Stock: 40,
		},
		{
			SKU: "HDPHN-SONY-WH1000XM5", Name: "Sony WH-1000XM5 Wireless Headphones",
			Category: "Electronics", Subcategory: "Audio", Brand: "Sony",
			Price:       399.99,
			Description: "Industry-leading noise cancellation",
			Tags:        []string{"headphones", "wireless", "noise-cancelling", "premium"},
			Specifications: map[string]any{
				"type": "Over-ear", "connectivity": "Bluetooth 5.2", "batteryLife": "30 hours", "noiseCancellation": true,
			},
			Stock: 60, Featured: true,
		},
		{
			SKU: "HDPHN-AIRPODS-PRO", Name: "Apple AirPods Pro (2nd Gen)",
			Category: "Electronics", Subcategory: "Audio", Brand: "Apple",
			Price:       249.00,
			Description: "Premium wireless earbuds with ANC",
			Tags:        []string{"earbuds", "wireless", "apple", "noise-cancelling"},
			Specifications: map[string]any{
				"type": "In-ear", "connectivity": "Bluetooth", "batteryLife": "6 hours", "noiseCancellation": true,
			},
			Stock: 100,
		},
		{
			SKU: "MOUSE-LOGITECH-MX3", Name: "Logitech MX Master 3",
			Category: "Electronics", Subcategory: "Accessories", Brand: "Logitech",
			Price:       99.99,
			Description: "Advanced wireless mouse for professionals",
			Tags:        []string{"mouse", "wireless", "ergonomic", "productivity"},
			Specifications: map[string]any{
				"type": "Wireless mouse", "connectivity": "Bluetooth + USB", "batteryLife": "70 days",
			},
			Stock: 150,
		},
		{
			SKU: "KEYBOARD-KEYCHRON-K8", Name: "Keychron K8 Mechanical Keyboard",
			Category: "Electronics", Subcategory: "Accessories", Brand: "Keychron",
			Price:       89.99,
			Description: "Wireless mechanical keyboard",
			Tags:        []string{"keyboard", "mechanical", "wireless", "gaming"},
			Specifications: map[string]any{
				"type": "Mechanical", "connectivity": "Bluetooth + USB-C", "switches": "Gateron Brown",
			},
			Stock: 80,
		},
		{
			SKU: "MONITOR-LG-27UK850", Name: `LG 27" 4K UHD Monitor`,
			Category: "Electronics", Subcategory: "Monitors", Brand: "LG",
			Price:       499.99,
			Description: "27-inch 4K UHD monitor with USB-C",
			Tags:        []string{"monitor", "4k", "usb-c", "professional"},
			Specifications: map[string]any{
				"size": "27 inches", "resolution": "3840x2160", "refreshRate": "60Hz", "panel": "IPS",
			},
			Stock: 30, Featured: true,
		},
		{
			SKU: "TABLET-IPAD-AIR", Name: `iPad Air 11" M2`,
			Category: "Electronics", Subcategory: "Tablets", Brand: "Apple",
			Price:       599.00,
			Description: "Powerful tablet with M2 chip",
			Tags:        []string{"tablet", "apple", "ipad", "m2"},
			Specifications: map[string]any{
				"processor": "Apple M2", "storage": "128GB", "display": "11-inch Liquid Retina",
			},
			Stock: 50, Featured: true,
		},
		{
			SKU: "CAMERA-CANON-R6", Name: "Canon EOS R6 Mirrorless Camera",
			Category: "Electronics", Subcategory: "Cameras", Brand: "Canon",
			Price:       2499.00,
			Description: "Professional mirrorless camera",
			Tags:        []string{"camera", "professional", "mirrorless", "canon"},
			Specifications: map[string]any{
				"sensor": "20MP Full Frame", "video": "4K 60fps", "stabilization": "5-axis IBIS",
			},
			Stock: 15,
		},
		{
			SKU: "PHONE-IPHONE-15-PRO", Name: "iPhone 15 Pro",
			Category: "Electronics", Subcategory: "Smartphones", Brand: "Apple",
			Price:       999.00,
			Description: "Latest iPhone with A17 Pro chip",
			Tags:        []string{"smartphone", "iphone", "apple", "titanium"},
			Specifications: map[string]any{
				"processor": "A17 Pro", "storage": "256GB", "display": "6.1-inch OLED", "camera": "48MP Main",
			},
			Stock: 120, Featured: true,
		},
	}
}

type catalogFile struct {
	Products []domain.ProductTemplate `yaml:"products"`
}

// LoadCatalog reads a YAML catalog with a top-level "products" list.
func LoadCatalog(path string) ([]domain.ProductTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfiguration, fmt.Sprintf("failed to read catalog %s", path), err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) ([]domain.ProductTemplate, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfiguration, "failed to unmarshal catalog YAML", err)
	}
	if err := ValidateCatalog(file.Products); err != nil {
		return nil, err
	}
	return file.Products, nil
}

var templateValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateCatalog checks each template's shape and that SKUs are unique.
func ValidateCatalog(templates []domain.ProductTemplate) error {
	if len(templates) == 0 {
		return apperrors.EmptyInput("catalog has no products")
	}
	var problems []string
	seen := make(map[string]int, len(templates))
	for i, t := range templates {
		if err := templateValidator.Struct(t); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					problems = append(problems, fmt.Sprintf("products[%d].%s failed '%s'", i, fe.Field(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("products[%d]: %v", i, err))
			}
		}
		if t.CompareAtPrice != nil && *t.CompareAtPrice < t.Price {
			problems = append(problems, fmt.Sprintf("products[%d].CompareAtPrice %.2f is below price %.2f", i, *t.CompareAtPrice, t.Price))
		}
		if t.SKU != "" {
			if prev, dup := seen[t.SKU]; dup {
				problems = append(problems, fmt.Sprintf("products[%d].SKU %q duplicates products[%d]", i, t.SKU, prev))
			} else {
				seen[t.SKU] = i
			}
		}
	}
	if len(problems) > 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "invalid catalog", &ValidationErrors{Errors: problems})
	}
	return nil
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors struct {
	Errors []string
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 1 {
		return ve.Errors[0]
	}
	return fmt.Sprintf("%d problems: %s", len(ve.Errors), strings.Join(ve.Errors, "; "))
}
