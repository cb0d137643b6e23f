// Package transfer кодирует товар в компактный токен для передачи по значению
// между экранами списка и деталей.
//
// Формат фиксированный: поля protobuf wire format
//
//	1 name     (bytes)
//	2 category (bytes)
//	3 price    (bytes, десятичная строка)
//	4 quantity (varint)
//
// затем base64url без паддинга. Неизвестные поля пропускаются.
package transfer

import (
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/shestoi/stockbook/internal/repository"
)

const (
	fieldName     protowire.Number = 1
	fieldCategory protowire.Number = 2
	fieldPrice    protowire.Number = 3
	fieldQuantity protowire.Number = 4
)

// ErrMalformed возвращается, когда токен не удаётся разобрать
var ErrMalformed = errors.New("malformed product token")

// Encode сериализует товар в токен
func Encode(p repository.Product) string {
	var b []byte
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, p.Name)
	b = protowire.AppendTag(b, fieldCategory, protowire.BytesType)
	b = protowire.AppendString(b, p.Category)
	b = protowire.AppendTag(b, fieldPrice, protowire.BytesType)
	b = protowire.AppendString(b, p.Price.String())
	b = protowire.AppendTag(b, fieldQuantity, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(p.Quantity)))

	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode восстанавливает товар из токена
// Все четыре поля обязательны
func Decode(token string) (repository.Product, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return repository.Product{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var (
		p    repository.Product
		seen = make(map[protowire.Number]bool, 4)
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return repository.Product{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case (num == fieldName || num == fieldCategory || num == fieldPrice) && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return repository.Product{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]

			switch num {
			case fieldName:
				p.Name = v
			case fieldCategory:
				p.Category = v
			case fieldPrice:
				price, err := repository.ParsePrice(v)
				if err != nil {
					return repository.Product{}, fmt.Errorf("%w: price: %v", ErrMalformed, err)
				}
				p.Price = price
			}
			seen[num] = true

		case num == fieldQuantity && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return repository.Product{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			quantity := protowire.DecodeZigZag(v)
			if quantity < -repository.MaxQuantity || quantity > repository.MaxQuantity {
				return repository.Product{}, fmt.Errorf("%w: quantity %d is out of range", ErrMalformed, quantity)
			}
			p.Quantity = int(quantity)
			seen[num] = true

		default:
			// неизвестное поле или неожиданный тип: пропускаем
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return repository.Product{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	for _, num := range []protowire.Number{fieldName, fieldCategory, fieldPrice, fieldQuantity} {
		if !seen[num] {
			return repository.Product{}, fmt.Errorf("%w: field %d is missing", ErrMalformed, num)
		}
	}

	return p, nil
}
