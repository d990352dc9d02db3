package domain

// PageCursor - номер текущей страницы, всегда >= 1.
// Нулевое значение структуры соответствует первой странице.
type PageCursor struct {
	page int
}

// NewPageCursor создает курсор, значения меньше 1 приводятся к 1
func NewPageCursor(page int) PageCursor {
	if page < 1 {
		page = 1
	}
	return PageCursor{page: page}
}

func (c PageCursor) Page() int {
	if c.page < 1 {
		return 1
	}
	return c.page
}

// Reset возвращает курсор на первую страницу
func (c *PageCursor) Reset() {
	c.page = 1
}

func (c *PageCursor) Next() {
	c.page = c.Page() + 1
}

// Prev уменьшает номер страницы. На первой странице ничего не делает и возвращает false.
func (c *PageCursor) Prev() bool {
	if c.Page() <= 1 {
		c.page = 1
		return false
	}
	c.page--
	return true
}

// Offset - смещение для параметра skip: (page - 1) * pageSize
func (c PageCursor) Offset(pageSize int) int {
	return (c.Page() - 1) * pageSize
}

// HasMorePages определяет наличие следующей страницы по эвристике "пришла полная страница".
// Это приближение: если общее количество кратно размеру страницы,
// следующая страница окажется пустой.
func HasMorePages(resultsCount, pageSize int) bool {
	return pageSize > 0 && resultsCount == pageSize
}
