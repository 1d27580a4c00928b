package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"UserCenter/internal/account/interfaces"
	"UserCenter/internal/shared/config"
	"UserCenter/internal/shared/infrastructure/db"
	mongox "UserCenter/internal/shared/infrastructure/mongo"
	"UserCenter/internal/shared/logs"
	transportgrpc "UserCenter/internal/shared/transport/grpc"
	httpserver "UserCenter/internal/shared/transport/http"
)

const serviceName = "account"

func main() {
	cfgPath := flag.String("config", "", "config file path, default searches configs/conf.yml upward")
	probe := flag.Bool("probe", false, "query grpc health of a running instance and exit")
	flag.Parse()

	conf, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}
	if *probe {
		os.Exit(runProbe(conf))
	}

	if _, err = logs.Init(serviceName, conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	config.OnChange(func(c config.Config) {
		logs.SetLevel(c.Log.Level)
		logs.Info("config reloaded", zap.String("log_level", c.Log.Level))
	})
	if conf.JWT.Secret == "" {
		logs.Warn("jwt secret is empty, login will fail until JWT_SECRET is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(conf.Database, logs.Kit())
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}

	var mongoDB *mongo.Database
	if conf.History.Driver == interfaces.HistoryDriverMongo {
		client, database, err := mongox.Open(ctx, conf.MongoDB, logs.Kit())
		if err != nil {
			logs.Fatal("open mongodb failed", zap.Error(err))
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		mongoDB = database
	}

	account, err := interfaces.New(ctx, interfaces.Deps{
		DB:     gormDB,
		Mongo:  mongoDB,
		Config: conf,
		Log:    logs.Kit(),
	})
	if err != nil {
		logs.Fatal("init account module failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpAddr := fmt.Sprintf("%s:%d", conf.HTTPServer.Host, conf.HTTPServer.Port)
	httpSrv := httpserver.NewHttpServer(httpAddr, nil, logs.Kit(), httpserver.Options{
		AllowOrigins: conf.Cors.AllowOrigins,
		Registerer:   reg,
		Gatherer:     reg,
	})
	httpSrv.Register(conf.HTTPServer.Prefix, account)

	stopCleanup := make(chan struct{})
	if rl := account.RateLimiter(); rl != nil {
		go rl.Run(time.Minute, stopCleanup)
	}

	errCh := make(chan error, 2)
	go func() {
		logs.Info("account http server started", zap.String("addr", httpAddr), zap.String("prefix", conf.HTTPServer.Prefix))
		if err := httpSrv.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("account http serve failed: %w", err)
		}
	}()

	var grpcSrv *transportgrpc.Server
	if conf.GRPCServer.Enabled {
		grpcAddr := fmt.Sprintf("%s:%d", conf.GRPCServer.Host, conf.GRPCServer.Port)
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			logs.Fatal("listen grpc failed", zap.Error(err))
		}
		grpcSrv = transportgrpc.NewServer(serviceName, logs.Kit())
		grpcSrv.SetServing(true)
		go func() {
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("account grpc serve failed: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	timeout := conf.HTTPServer.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if grpcSrv != nil {
		grpcSrv.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logs.Error("http shutdown failed", zap.Error(err))
	}
	if grpcSrv != nil {
		grpcSrv.Stop(timeout)
	}
	close(stopCleanup)
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// runProbe 返回进程退出码：SERVING 为 0。
func runProbe(conf config.Config) int {
	host := conf.GRPCServer.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	conn, err := transportgrpc.Dial(fmt.Sprintf("%s:%d", host, conf.GRPCServer.Port))
	if err != nil {
		fmt.Fprintln(os.Stderr, "dial failed:", err)
		return 1
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	status, err := transportgrpc.Probe(ctx, conn, serviceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "probe failed:", err)
		return 1
	}
	fmt.Println(status.String())
	if status != healthpb.HealthCheckResponse_SERVING {
		return 1
	}
	return 0
}
