package provider

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/philiph/zmxy/internal/adapters/driven/cipher"
	"github.com/philiph/zmxy/internal/adapters/driven/signature"
	"github.com/philiph/zmxy/internal/core/domain"
)

const (
	errCodeInvalidSignature = "ZMOP.invalid_signature"
	errCodeUnknownMethod    = "ZMOP.invalid_method"
	signSourceValue         = "zhima_sign_value"
)

// ServeHTTP handles one gateway request.
func (p *Provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	req := Request{Method: query.Get(domain.FieldMethod), Query: query}
	signType := query.Get(domain.FieldSignType)

	content := r.PostForm.Get(domain.FieldBizContent)
	if sealed := r.PostForm.Get(domain.FieldParams); sealed != "" {
		req.Sealed = true
		plain, err := cipher.DecryptBlocks(p.key, sealed)
		if err != nil {
			http.Error(w, "cannot open params", http.StatusBadRequest)
			return
		}
		content = string(plain)
	}
	values, err := url.ParseQuery(content)
	if err != nil {
		http.Error(w, "bad business content", http.StatusBadRequest)
		return
	}
	req.Params = domain.ParamsFromValues(values)

	if v, err := signature.NewRSAVerifier(&p.clientKey.PublicKey, signType); err == nil {
		req.SignValid = v.Verify(domain.Canonicalize(req.Params), query.Get(domain.FieldSign))
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	mode, status := p.mode, p.status
	body, ok := p.responses[req.Method]
	p.mu.Unlock()

	if !ok {
		body, ok = defaultResponses[req.Method]
	}
	switch {
	case !req.SignValid:
		body = businessError(errCodeInvalidSignature, "signature verification failed")
	case !ok:
		body = businessError(errCodeUnknownMethod, "unknown method")
	}

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	env, err := p.wrap(mode, signType, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	json.NewEncoder(w).Encode(env)
}

// wrap builds the response envelope for body in the given mode.
func (p *Provider) wrap(mode Mode, signType, body string) (*domain.ResponseEnvelope, error) {
	signer, err := signature.NewRSASigner(p.key, signType)
	if err != nil {
		return nil, err
	}
	env := &domain.ResponseEnvelope{}

	switch mode {
	case ModePlain:
		env.BizResponse = body
		return env, nil
	case ModePlainSigned:
		env.BizResponse = body
		env.BizResponseSign, err = signer.Sign(body)
		return env, err
	case ModeHybrid:
		env.Encrypted = true
		env.BizResponse, env.EncryptedKey, err = cipher.EncryptHybrid(&p.clientKey.PublicKey, []byte(body))
	default:
		env.Encrypted = true
		env.BizResponse, err = cipher.EncryptBlocks(&p.clientKey.PublicKey, []byte(body))
	}
	if err != nil {
		return nil, err
	}

	signed := env.BizResponse
	if mode == ModeTampered {
		signed += "tampered"
	}
	if env.BizResponseSign, err = signer.Sign(signed); err != nil {
		return nil, err
	}
	envSign, err := signer.Sign(signSourceValue)
	if err != nil {
		return nil, err
	}
	env.Sign = &domain.ResponseSign{SignSource: signSourceValue, SignResult: envSign}
	return env, nil
}

func businessError(code, message string) string {
	data, _ := json.Marshal(map[string]any{
		"success":       false,
		"error_code":    code,
		"error_message": message,
	})
	return string(data)
}
