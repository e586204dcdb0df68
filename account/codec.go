package account

import (
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/golang-jwt/jwt/v5"
)

type (
	// Codec signs and verifies the compact tokens handed to clients.
	//
	// Verification is a pure function of the token and the secret, so
	// decoded claims are cached for a short while to avoid re-parsing
	// the same token on every request. The cache says nothing about
	// whether a token is still live, that answer always comes from
	// the store.
	Codec struct {
		secret  []byte
		decoded *bigcache.BigCache
	}

	tokenClaims struct {
		jwt.RegisteredClaims
		Access string `json:"access"`
	}
)

func NewCodec(secret []byte) *Codec {
	cache, _ := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	return &Codec{
		secret:  secret,
		decoded: cache,
	}
}

// Sign produces a signed token carrying the subject id and access label.
func (c *Codec) Sign(subject, access string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Access:           access,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature and shape of the token and returns the
// embedded subject id and access label. Any failure is ErrInvalidToken,
// callers get no detail about what exactly was wrong.
func (c *Codec) Verify(token string) (subject, access string, err error) {
	if buf, cerr := c.decoded.Get(token); cerr == nil {
		subject, access, ok := strings.Cut(string(buf), "\n")
		if ok {
			return subject, access, nil
		}
	}
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.Access == "" {
		return "", "", ErrInvalidToken
	}
	c.decoded.Set(token, []byte(claims.Subject+"\n"+claims.Access))
	return claims.Subject, claims.Access, nil
}
