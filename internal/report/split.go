package report

// hundredPercent 100% в сотых долях процента
const hundredPercent = 10000

// CentiHours переводит минуты в сотые доли часа с округлением (90 минут -> 150)
func CentiHours(minutes int) int64 {
	if minutes <= 0 {
		return 0
	}
	return (int64(minutes)*100 + 30) / 60
}

// CostCents считает стоимость брони в центах: часы × ставка, округление до цента
func CostCents(centiHours, rateCents int64) int64 {
	if centiHours <= 0 || rateCents <= 0 {
		return 0
	}
	return (centiHours*rateCents + 50) / 100
}

// SplitEvenly делит сумму поровну между n участниками
// Остаток раздаётся по одному центу участникам по порядку: основной, затем совместные
// 2000 / 3 -> 667, 667, 666
func SplitEvenly(totalCents int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	shares := make([]int64, n)
	base := totalCents / int64(n)
	remainder := totalCents % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// ParticipationBasisPoints доля участника в сотых долях процента (3333 = 33.33%)
// Для нулевой стоимости доля делится поровну
func ParticipationBasisPoints(shareCents, totalCents int64, n int) int64 {
	if n <= 0 {
		return 0
	}
	if totalCents <= 0 {
		return (hundredPercent + int64(n)/2) / int64(n)
	}
	return (shareCents*hundredPercent + totalCents/2) / totalCents
}
