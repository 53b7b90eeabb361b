// Package catalog holds the pet-house product dataset.
package catalog

import "github.com/drstein77/lismarket/internal/models"

// products is never modified after package initialization.
var products = [...]models.Product{
	{
		ID:          1,
		Name:        "Бобриная Хатка",
		Price:       1699,
		OldPrice:    1999,
		Discount:    "-15%",
		Image:       "https://ilva.by/images/stories/berezinski_zapovednik/Muzeum/11.jpg",
		Description: "Уютная хатка для вашего бобра. Изготовлена из натуральных материалов. Размеры: 100x80x60 см.",
		Category:    "Лисы",
	},
	{
		ID:          2,
		Name:        "Домик для хорька",
		Price:       1899,
		OldPrice:    2199,
		Discount:    "-14%",
		Image:       "https://live.staticflickr.com/2283/3533484190_419115ee56.jpg",
		Description: "Многоуровневый домик для хорька с гамаком и тоннелями. Размеры: 80x60x100 см.",
		Category:    "Кошки",
	},
	{
		ID:          3,
		Name:        "Гнездо для попугая",
		Price:       899,
		OldPrice:    1199,
		Discount:    "-25%",
		Image:       "https://avatars.mds.yandex.net/i?id=94b23cb7be64e6b997dc4610032b5003_l-10752210-images-thumbs&n=13",
		Description: "Уютное гнездышко для попугаев средних пород. Диаметр: 40 см.",
		Category:    "Птицы",
	},
	{
		ID:          4,
		Name:        "Лежанка для кошки",
		Price:       1099,
		OldPrice:    1499,
		Discount:    "-27%",
		Image:       "https://cdn1.ozone.ru/s3/multimedia-j/6181764199.jpg",
		Description: "Мягкая лежанка для кошки с бортиками. Размер: 50x40 см.",
		Category:    "Кошки",
	},
	{
		ID:          5,
		Name:        "Будка для собаки",
		Price:       3199,
		OldPrice:    3999,
		Discount:    "-20%",
		Image:       "https://zveroteka.ru/wp-content/uploads/2021/03/Budki-16.jpg",
		Description: "Прочная будка для собак средних пород. Размеры: 120x80x100 см.",
		Category:    "Собаки",
	},
}

// Products returns the catalog in authored order.
// Each call returns a new slice with the same content.
func Products() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products[:])
	return out
}
