package service

import "time"

// addMonths 按日历月推进日期。
// 日期落在目标月不存在的日子时（如 1 月 31 日 +1 月），收敛到目标月最后一天。
func addMonths(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) + months
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month < 1 {
		month += 12
		year--
	}

	day := t.Day()
	if last := lastDayOfMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// lastDayOfMonth 返回指定月份的最后一天
func lastDayOfMonth(year int, month time.Month) int {
	// 下月第 0 天即本月最后一天
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
