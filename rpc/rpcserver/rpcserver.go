package rpcserver

import (
	"net/http"

	"github.com/cindra-project/cindra-tokenomics/rpc"
	"github.com/cindra-project/cindra-tokenomics/util/ratelimit"
)

type Server struct {
	handlers map[string]Handler
	config   Config

	limit *ratelimit.Limit
}
type Handler = func(c *Context)

type Config struct {
	// When true, the RPC server will block CORS requests and require valid username and password.
	Restricted bool

	// The username:password used in Basic Auth. Leave blank to disable authentication.
	Authentication string

	// The maximum number of requests per minute from a single IP address. Default is 500.
	RateLimit int
}

func New(bind string, config Config) *Server {
	if config.RateLimit == 0 {
		config.RateLimit = 500
	}

	rpcSrv := &Server{
		handlers: make(map[string]func(c *Context)),
		config:   config,
		limit:    ratelimit.New(config.RateLimit),
	}

	httpSrv := &http.Server{
		Addr: bind,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := rpcSrv.handler(w, r)
			if err != nil {
				rpc.Log.Devf("rpc request from %s failed: %v", r.RemoteAddr, err)
			}
		}),
	}
	go func() {
		err := httpSrv.ListenAndServe()
		if err != nil {
			rpc.Log.Err("rpc server:", err)
		}
	}()

	return rpcSrv
}

func (s *Server) Handle(method string, f Handler) {
	s.handlers[method] = f
}
