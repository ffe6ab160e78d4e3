package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps session values server side in Redis. The cookie carries
// only the signed session id.
type RedisStore struct {
	rdb     *redis.Client
	codecs  []securecookie.Codec
	Options *sessions.Options
}

var _ sessions.Store = (*RedisStore)(nil)

// NewRedisStore signs session ids with keyPairs (see securecookie.CodecsFromPairs).
func NewRedisStore(rdb *redis.Client, opts *sessions.Options, keyPairs ...[]byte) *RedisStore {
	s := &RedisStore{
		rdb:     rdb,
		codecs:  securecookie.CodecsFromPairs(keyPairs...),
		Options: opts,
	}
	for _, c := range s.codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(opts.MaxAge)
		}
	}
	return s
}

// Get returns the session cached in the request registry, loading it on first use.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &sess.ID, s.codecs...); err != nil {
		return sess, err
	}
	found, err := s.load(r.Context(), sess)
	if err != nil {
		return sess, err
	}
	if !found {
		// Record expired or was deleted; start over with a new id.
		sess.ID = ""
		return sess, nil
	}
	sess.IsNew = false
	return sess, nil
}

// Save writes the whole record, replacing what was stored before.
// MaxAge <= 0 deletes the record and expires the cookie.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	ctx := r.Context()
	if sess.Options.MaxAge <= 0 {
		if sess.ID != "" {
			if err := s.rdb.Del(ctx, keyPrefix+sess.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	payload, err := encodeValues(sess.Values)
	if err != nil {
		return err
	}
	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

func (s *RedisStore) load(ctx context.Context, sess *sessions.Session) (bool, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+sess.ID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("load session: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	for k, v := range values {
		sess.Values[k] = v
	}
	return true, nil
}

// encodeValues only accepts string keys and values, which is all the handlers store.
func encodeValues(values map[interface{}]interface{}) ([]byte, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		ks, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("session key %v is not a string", k)
		}
		vs, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("session value for %q is not a string", ks)
		}
		out[ks] = vs
	}
	return json.Marshal(out)
}
