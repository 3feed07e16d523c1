package domain

import (
	"path"
	"strings"
)

// ImageRefPrefix — префикс относительного пути, по которому раздаются изображения
const ImageRefPrefix = "uploads/"

// ImageRef строит ссылку на изображение из ключа хранилища
func ImageRef(key string) string {
	return ImageRefPrefix + key
}

// ImageKey извлекает ключ хранилища из ссылки. Ссылки вне uploads/,
// ключи с переходами по каталогам и скрытые имена (в том числе
// временные файлы незавершенных загрузок) отклоняются.
func ImageKey(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, ImageRefPrefix)
	if !ok || key == "" {
		return "", false
	}
	if key != path.Base(key) || strings.HasPrefix(key, ".") || strings.Contains(key, `\`) {
		return "", false
	}
	return key, true
}
