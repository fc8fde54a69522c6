package knowledge

// defaultSystemLibs are provided by every Nix build host and never resolved
var defaultSystemLibs = []string{
	"libc.so.6",
	"libm.so.6",
	"libdl.so.2",
	"libpthread.so.0",
	"librt.so.1",
	"libutil.so.1",
	"libresolv.so.2",
	"ld-linux-x86-64.so.2",
	"ld-linux-aarch64.so.1",
	"libgcc_s.so.1",
	"libstdc++.so.6",
}

// defaultLibToPkg maps shared object file names to nixpkgs attribute paths
var defaultLibToPkg = map[string]string{
	// GTK / GUI
	"libgtk-3.so.0":          "gtk3",
	"libgdk-3.so.0":          "gtk3",
	"libgtk-x11-2.0.so.0":    "gtk2",
	"libglib-2.0.so.0":       "glib",
	"libgobject-2.0.so.0":    "glib",
	"libgio-2.0.so.0":        "glib",
	"libgmodule-2.0.so.0":    "glib",
	"libpango-1.0.so.0":      "pango",
	"libpangocairo-1.0.so.0": "pango",
	"libpangoft2-1.0.so.0":   "pango",
	"libcairo.so.2":          "cairo",
	"libcairo-gobject.so.2":  "cairo",
	"libgdk_pixbuf-2.0.so.0": "gdk-pixbuf",
	"libatk-1.0.so.0":        "at-spi2-atk",
	"libatk-bridge-2.0.so.0": "at-spi2-atk",
	"libatspi.so.0":          "at-spi2-core",
	"libnotify.so.4":         "libnotify",
	"libsecret-1.so.0":       "libsecret",

	// Qt
	"libQt5Core.so.5":      "qt5.qtbase",
	"libQt5Gui.so.5":       "qt5.qtbase",
	"libQt5Widgets.so.5":   "qt5.qtbase",
	"libQt5DBus.so.5":      "qt5.qtbase",
	"libQt5Network.so.5":   "qt5.qtbase",
	"libQt5X11Extras.so.5": "qt5.qtx11extras",
	"libQt6Core.so.6":      "qt6.qtbase",
	"libQt6Gui.so.6":       "qt6.qtbase",
	"libQt6Widgets.so.6":   "qt6.qtbase",
	"libQt6DBus.so.6":      "qt6.qtbase",

	// X11
	"libX11.so.6":        "xorg.libX11",
	"libX11-xcb.so.1":    "xorg.libX11",
	"libXcomposite.so.1": "xorg.libXcomposite",
	"libXdamage.so.1":    "xorg.libXdamage",
	"libXext.so.6":       "xorg.libXext",
	"libXfixes.so.3":     "xorg.libXfixes",
	"libXrandr.so.2":     "xorg.libXrandr",
	"libXrender.so.1":    "xorg.libXrender",
	"libXtst.so.6":       "xorg.libXtst",
	"libXss.so.1":        "xorg.libXScrnSaver",
	"libxcb.so.1":        "xorg.libxcb",
	"libxcb-dri3.so.0":   "xorg.libxcb",
	"libxkbcommon.so.0":  "libxkbcommon",
	"libxshmfence.so.1":  "libxshmfence",

	// OpenGL / graphics
	"libgbm.so.1":    "libgbm",
	"libdrm.so.2":    "libdrm",
	"libGL.so.1":     "libglvnd",
	"libEGL.so.1":    "libglvnd",
	"libGLESv2.so.2": "libglvnd",
	"libvulkan.so.1": "vulkan-loader",

	// Sound / media
	"libasound.so.2": "alsa-lib",
	"libpulse.so.0":  "libpulseaudio",

	// Core / utils
	"libnss3.so":     "nss",
	"libnssutil3.so": "nss",
	"libsmime3.so":   "nss",
	"libnspr4.so":    "nspr",
	"libcups.so.2":   "cups",
	"libdbus-1.so.3": "dbus",
	"libexpat.so.1":  "expat",
	"libudev.so.1":   "systemd",
	"libz.so.1":      "zlib",
	"libuuid.so.1":   "libuuid",
	"libcurl.so.4":   "curl",
	"libssl.so.3":    "openssl",
	"libcrypto.so.3": "openssl",
}

// defaultDebToPkg maps Debian binary package names to nixpkgs attribute paths
var defaultDebToPkg = map[string]string{
	// Basic system libraries
	"libc6":           "glibc",
	"libasound2":      "alsa-lib",
	"ca-certificates": "cacert",
	"libglib2.0-0":    "glib",
	"libgcc-s1":       "gcc.cc.lib",
	"libstdc++6":      "gcc.cc.lib",
	"zlib1g":          "zlib",

	// Graphics stack and sound
	"libatk-bridge2.0-0": "at-spi2-atk",
	"libatspi2.0-0":      "at-spi2-core",
	"libatk1.0-0":        "atk",
	"libcairo2":          "cairo",
	"libcups2":           "cups",
	"libdbus-1-3":        "dbus",
	"libexpat1":          "expat",
	"libgbm1":            "libgbm",
	"libgtk-3-0":         "gtk3",
	"libpango-1.0-0":     "pango",
	"libudev1":           "systemd",
	"libvulkan1":         "vulkan-loader",
	"fonts-liberation":   "liberation_ttf",

	// X11
	"libx11-6":       "xorg.libX11",
	"libx11-xcb1":    "xorg.libX11",
	"libxcb1":        "xorg.libxcb",
	"libxcomposite1": "xorg.libXcomposite",
	"libxdamage1":    "xorg.libXdamage",
	"libxext6":       "xorg.libXext",
	"libxfixes3":     "xorg.libXfixes",
	"libxkbcommon0":  "libxkbcommon",
	"libxrandr2":     "xorg.libXrandr",
	"libxss1":        "xorg.libXScrnSaver",
	"libxtst6":       "xorg.libXtst",

	// Network and security
	"libcurl4":        "curl",
	"libcurl3-gnutls": "curl",
	"libnspr4":        "nspr",
	"libnss3":         "nss",
	"libssl3":         "openssl",
	"libssl1.1":       "openssl_1_1",

	// Qt
	"libqt5core5a":      "qt5.qtbase",
	"libqt5gui5":        "qt5.qtbase",
	"libqt5widgets5":    "qt5.qtbase",
	"libqt5dbus5":       "qt5.qtbase",
	"libqt5network5":    "qt5.qtbase",
	"libqt5qml5":        "qt5.qtdeclarative",
	"libqt5quick5":      "qt5.qtdeclarative",
	"libqt5webchannel5": "qt5.qtwebchannel",
	"libqt5websockets5": "qt5.qtwebsockets",
	"libqt5x11extras5":  "qt5.qtx11extras",
	"libqt6core6":       "qt6.qtbase",
	"libqt6gui6":        "qt6.qtbase",
	"libqt6widgets6":    "qt6.qtbase",
	"libqt6dbus6":       "qt6.qtbase",

	// Utilities
	"xdg-utils":      "xdg-utils",
	"wget":           "wget",
	"jq":             "jq",
	"squashfs-tools": "squashfsTools",
	"binutils":       "binutils",

	// Desktop, notifications, secrets
	"libnotify4":    "libnotify",
	"libsecret-1-0": "libsecret",

	// Misc system libraries
	"libuuid1":     "libuuid",
	"libdrm2":      "libdrm",
	"libgconf-2-4": "gconf",
}
