package domain

// NameTotal — сумма заказов одного клиента.
type NameTotal struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// Totals хранит суммы по именам в порядке первого появления имени.
type Totals []NameTotal

// SumByName группирует заказы по имени и суммирует subtotal.
func SumByName(orders []Order) Totals {
	index := make(map[string]int)
	totals := make(Totals, 0)
	for _, o := range orders {
		i, ok := index[o.Name]
		if !ok {
			index[o.Name] = len(totals)
			totals = append(totals, NameTotal{Name: o.Name, Total: o.Subtotal})
			continue
		}
		totals[i].Total += o.Subtotal
	}
	return totals
}

// Get возвращает сумму по имени.
func (t Totals) Get(name string) (int64, bool) {
	for _, nt := range t {
		if nt.Name == name {
			return nt.Total, true
		}
	}
	return 0, false
}

// AsMap возвращает суммы в виде map (порядок ключей теряется).
func (t Totals) AsMap() map[string]int64 {
	result := make(map[string]int64, len(t))
	for _, nt := range t {
		result[nt.Name] = nt.Total
	}
	return result
}

// SumSubtotals суммирует subtotal заказов, удовлетворяющих keep; nil учитывает все.
func SumSubtotals(orders []Order, keep func(Order) bool) int64 {
	var sum int64
	for _, o := range orders {
		if keep != nil && !keep(o) {
			continue
		}
		sum += o.Subtotal
	}
	return sum
}

// IndexByName возвращает индекс первого заказа с указанным именем или -1.
func IndexByName(orders []Order, name string) int {
	for i, o := range orders {
		if o.Name == name {
			return i
		}
	}
	return -1
}
