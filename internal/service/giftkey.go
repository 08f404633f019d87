package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// 卡密字符表：大写字母去掉 O/I，数字去掉 0/1，避免人工抄录歧义。
const giftCardKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	giftCardKeyGroupCount = 4
	giftCardKeyGroupSize  = 4
)

// generateGiftCardKey 生成 XXXX-XXXX-XXXX-XXXX 格式的礼品卡卡密
func generateGiftCardKey() string {
	var b strings.Builder
	b.Grow(giftCardKeyGroupCount*giftCardKeyGroupSize + giftCardKeyGroupCount - 1)
	max := big.NewInt(int64(len(giftCardKeyAlphabet)))
	for g := 0; g < giftCardKeyGroupCount; g++ {
		if g > 0 {
			b.WriteByte('-')
		}
		for i := 0; i < giftCardKeyGroupSize; i++ {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				b.WriteByte(giftCardKeyAlphabet[0])
				continue
			}
			b.WriteByte(giftCardKeyAlphabet[n.Int64()])
		}
	}
	return b.String()
}
