package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/digistock/internal/constants"
)

// generateSaleNo 生成销售单号
func generateSaleNo() string {
	return constants.SaleNoPrefix + time.Now().Format("20060102150405") + randNumeric(6)
}

// generatePurchaseNo 生成进货单号
func generatePurchaseNo() string {
	return constants.PurchaseNoPrefix + time.Now().Format("20060102150405") + randNumeric(6)
}

// generateReference 生成流水参考号
func generateReference(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ref"
	}
	return fmt.Sprintf("%s:%d%s", prefix, time.Now().UnixNano(), randNumeric(4))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
