package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Route 是路由表中的一条记录。Handler 由 controller 持有，路由表只借用。
type Route struct {
	Method  string
	Path    string
	Name    string
	Handler gin.HandlerFunc
}

type param struct {
	key   string
	value string
}

// Match 按注册顺序返回第一条 method 与 path 都匹配的路由。
//
// path 模式支持字面量段与 ":name" 参数段；末尾斜杠不参与比较。
func Match(routes []Route, method, path string) (Route, bool) {
	for _, r := range routes {
		if r.Method != method {
			continue
		}
		if _, ok := matchPath(r.Path, path); ok {
			return r, true
		}
	}
	return Route{}, false
}

func matchPath(pattern, path string) ([]param, bool) {
	ps, qs := splitPath(pattern), splitPath(path)
	if len(ps) != len(qs) {
		return nil, false
	}
	var params []param
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if qs[i] == "" {
				return nil, false
			}
			params = append(params, param{key: seg[1:], value: qs[i]})
			continue
		}
		if seg != qs[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath "/a/b/" -> [a b]，"/" 与 "" -> []。
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
