package html

import "html/template"

var deckTmpl = template.Must(template.New("deck").Parse(deckTemplate))

const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800&family=Poppins:wght@600;700;800&display=swap" rel="stylesheet">
    <style>
        * {
            font-family: {{.BodyStack}};
        }
        h1, h2, h3 {
            font-family: {{.HeadStack}};
        }
        .slide {
            height: 100vh;
            display: none;
            opacity: 0;
            transform: scale(0.95);
            transition: all 0.4s cubic-bezier(0.4, 0, 0.2, 1);
            overflow: hidden;
        }
        .slide.active {
            display: flex;
            opacity: 1;
            transform: scale(1);
        }
        @keyframes slideInRight {
            from { opacity: 0; transform: translateX(30px); }
            to { opacity: 1; transform: translateX(0); }
        }
        @keyframes slideInLeft {
            from { opacity: 0; transform: translateX(-30px); }
            to { opacity: 1; transform: translateX(0); }
        }
        @keyframes fadeInUp {
            from { opacity: 0; transform: translateY(30px); }
            to { opacity: 1; transform: translateY(0); }
        }
        @keyframes scaleIn {
            from { opacity: 0; transform: scale(0.8); }
            to { opacity: 1; transform: scale(1); }
        }
        @keyframes shimmer {
            0% { background-position: -1000px 0; }
            100% { background-position: 1000px 0; }
        }
        .fade-in { animation: fadeInUp 0.6s ease-out; }
        .slide-in-right { animation: slideInRight 0.7s ease-out; }
        .slide-in-left { animation: slideInLeft 0.7s ease-out; }
        .scale-in { animation: scaleIn 0.5s ease-out; }
        .bullet-point {
            position: relative;
            padding-left: 2rem;
            transition: all 0.3s ease;
        }
        .bullet-point:hover {
            transform: translateX(8px);
            background: linear-gradient(90deg, transparent, rgba(249, 115, 22, 0.1));
            border-radius: 8px;
            padding: 0.5rem 0.5rem 0.5rem 2rem;
        }
        .bullet-point::before {
            content: "";
            position: absolute;
            left: 0;
            top: 0.6rem;
            width: 12px;
            height: 12px;
            background: linear-gradient(135deg, #f97316, #fb923c);
            border-radius: 50%;
            box-shadow: 0 2px 8px rgba(249, 115, 22, 0.4);
        }
        .progress-bar {
            position: fixed;
            top: 0;
            left: 0;
            height: 4px;
            background: linear-gradient(90deg, #667eea, #764ba2, #f093fb, #4facfe);
            transition: width 0.3s ease;
            z-index: 9999;
        }
        .blob {
            border-radius: 30% 70% 70% 30% / 30% 30% 70% 70%;
            animation: blob 8s infinite;
        }
        @keyframes blob {
            0%, 100% { border-radius: 30% 70% 70% 30% / 30% 30% 70% 70%; }
            25% { border-radius: 58% 42% 75% 25% / 76% 46% 54% 24%; }
            50% { border-radius: 50% 50% 33% 67% / 55% 27% 73% 45%; }
            75% { border-radius: 33% 67% 58% 42% / 63% 68% 32% 37%; }
        }
        .glass {
            background: rgba(255, 255, 255, 0.1);
            backdrop-filter: blur(10px);
            border: 1px solid rgba(255, 255, 255, 0.2);
        }
        .shimmer {
            background: linear-gradient(90deg, transparent, rgba(255,255,255,0.3), transparent);
            background-size: 200% 100%;
            animation: shimmer 3s infinite;
        }
    </style>
</head>
<body class="{{.Style.Bg}} {{.Style.Text}}">
    <div class="progress-bar" id="progressBar"></div>
    <div id="presentation" class="relative">
{{range .Slides}}{{if .IsTitle}}
        <div class="slide active" data-slide="{{.Index}}">
            <div class="w-full h-full {{$.Style.Primary}} flex items-center justify-center p-8 relative overflow-hidden">
                <div class="absolute top-10 left-10 w-72 h-72 bg-white/10 rounded-full blob blur-3xl"></div>
                <div class="absolute bottom-10 right-10 w-96 h-96 bg-white/10 rounded-full blob blur-3xl" style="animation-delay: -4s;"></div>

                <div class="text-center space-y-6 fade-in relative z-10">
                    <div class="mb-4">
                        <div class="inline-block px-5 py-2 bg-white/20 backdrop-blur-md rounded-full text-white/90 text-sm font-semibold mb-6 shimmer">
                            &#10024; AI-Powered Presentation
                        </div>
                    </div>

                    <h1 class="text-6xl font-extrabold text-white mb-6 leading-tight scale-in px-4">{{.Title}}</h1>

                    <div class="h-1 w-32 mx-auto bg-gradient-to-r from-transparent via-white to-transparent rounded-full"></div>

                    <p class="text-2xl text-white/90 font-light max-w-3xl mx-auto slide-in-right px-4">{{.Subtitle}}</p>
                </div>
            </div>
        </div>
{{else}}
        <div class="slide" data-slide="{{.Index}}">
            <div class="w-full h-full p-8 {{$.Style.ContentBg}} overflow-auto">
                <div class="{{$.Style.Primary}} text-white p-6 rounded-2xl shadow-2xl mb-6 relative overflow-hidden">
                    <div class="absolute top-0 right-0 w-64 h-64 bg-white/10 rounded-full blur-3xl"></div>
                    <h2 class="text-4xl font-bold relative z-10 slide-in-left">{{.Title}}</h2>
                    <div class="mt-3 h-1.5 w-24 bg-white/40 rounded-full relative z-10"></div>
                </div>

                <div class="{{$.Style.CardBg}} backdrop-blur-sm border {{$.Style.Border}} rounded-2xl p-6 shadow-xl">
                    <div class="{{if .HasImage}}grid grid-cols-2 gap-8{{end}}">
                        <div class="space-y-4">
{{range .Points}}
                            <div class="bullet-point text-lg leading-relaxed {{$.Style.Text}} fade-in p-3 rounded-xl shadow-sm hover:shadow-md transition-all duration-300" style="animation-delay: {{.Delay}};">{{.HTML}}</div>
{{end}}
                        </div>
{{if .HasImage}}{{if .ImageSrc}}
                        <div class="flex items-center justify-center slide-in-right">
                            <img src="{{.ImageSrc}}" alt="{{.Title}}" class="w-full h-80 object-cover rounded-2xl shadow-xl">
                        </div>
{{else}}
                        <div class="flex items-center justify-center slide-in-right">
                            <div class="w-full h-80 bg-gradient-to-br from-indigo-100 via-purple-100 to-pink-100 rounded-2xl flex items-center justify-center border-4 border-dashed border-indigo-300 shadow-xl relative overflow-hidden">
                                <div class="absolute inset-0 bg-gradient-to-r from-transparent via-white/30 to-transparent shimmer"></div>
                                <div class="text-center relative z-10">
                                    <svg class="w-24 h-24 mx-auto text-indigo-400 mb-3" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                                        <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 16l4.586-4.586a2 2 0 012.828 0L16 16m-2-2l1.586-1.586a2 2 0 012.828 0L20 14m-6-6h.01M6 20h12a2 2 0 002-2V6a2 2 0 00-2-2H6a2 2 0 00-2 2v12a2 2 0 002 2z"></path>
                                    </svg>
                                    <p class="text-indigo-600 font-bold text-base">&#128248; Visual Content</p>
                                    <p class="text-indigo-400 text-sm mt-1">Add image or diagram</p>
                                </div>
                            </div>
                        </div>
{{end}}{{end}}
                    </div>
                </div>

                <div class="mt-4 p-4 bg-gradient-to-r from-blue-500 to-indigo-600 text-white border-l-4 border-yellow-400 rounded-xl shadow-xl hidden" id="notes-{{.Index}}">
                    <div class="flex items-start space-x-3">
                        <svg class="w-6 h-6 flex-shrink-0 mt-1" fill="currentColor" viewBox="0 0 20 20">
                            <path d="M9 2a1 1 0 000 2h2a1 1 0 100-2H9z"></path>
                            <path fill-rule="evenodd" d="M4 5a2 2 0 012-2 3 3 0 003 3h2a3 3 0 003-3 2 2 0 012 2v11a2 2 0 01-2 2H6a2 2 0 01-2-2V5zm3 4a1 1 0 000 2h.01a1 1 0 100-2H7zm3 0a1 1 0 000 2h3a1 1 0 100-2h-3zm-3 4a1 1 0 100 2h.01a1 1 0 100-2H7zm3 0a1 1 0 100 2h3a1 1 0 100-2h-3z" clip-rule="evenodd"></path>
                        </svg>
                        <div class="flex-1">
                            <h3 class="font-bold text-base mb-2">&#128221; Speaker Notes</h3>
                            <p class="text-white/95 text-sm leading-relaxed">{{.Notes}}</p>
                        </div>
                    </div>
                </div>
            </div>
        </div>
{{end}}{{end}}
    </div>

    <div class="fixed bottom-8 left-1/2 transform -translate-x-1/2 flex items-center space-x-3 bg-gradient-to-r from-white/95 to-gray-50/95 backdrop-blur-md rounded-full px-8 py-4 shadow-2xl border border-gray-200/50 scale-in">
        <button onclick="prevSlide()" class="group p-3 hover:bg-gradient-to-r hover:from-purple-500 hover:to-indigo-600 rounded-full transition-all duration-300 hover:scale-110 hover:shadow-lg">
            <svg class="w-6 h-6 text-gray-700 group-hover:text-white transition" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2.5" d="M15 19l-7-7 7-7"></path>
            </svg>
        </button>

        <div class="flex items-center space-x-3 px-5 py-2 bg-gradient-to-r from-purple-500 to-indigo-600 rounded-full">
            <span id="currentSlide" class="font-bold text-white text-lg">1</span>
            <span class="text-white/60 font-bold">/</span>
            <span id="totalSlides" class="text-white/90 font-semibold">{{.Count}}</span>
        </div>

        <button onclick="nextSlide()" class="group p-3 hover:bg-gradient-to-r hover:from-purple-500 hover:to-indigo-600 rounded-full transition-all duration-300 hover:scale-110 hover:shadow-lg">
            <svg class="w-6 h-6 text-gray-700 group-hover:text-white transition" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2.5" d="M9 5l7 7-7 7"></path>
            </svg>
        </button>

        <div class="h-8 w-px bg-gray-300 mx-2"></div>

        <button onclick="toggleNotes()" class="group p-3 hover:bg-gradient-to-r hover:from-blue-500 hover:to-cyan-600 rounded-full transition-all duration-300 hover:scale-110 hover:shadow-lg" title="Toggle Notes (N)">
            <svg class="w-6 h-6 text-gray-700 group-hover:text-white transition" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 12h6m-6 4h6m2 5H7a2 2 0 01-2-2V5a2 2 0 012-2h5.586a1 1 0 01.707.293l5.414 5.414a1 1 0 01.293.707V19a2 2 0 01-2 2z"></path>
            </svg>
        </button>

        <button onclick="toggleFullscreen()" class="group p-3 hover:bg-gradient-to-r hover:from-green-500 hover:to-emerald-600 rounded-full transition-all duration-300 hover:scale-110 hover:shadow-lg" title="Fullscreen (F)">
            <svg class="w-6 h-6 text-gray-700 group-hover:text-white transition" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 8V4m0 0h4M4 4l5 5m11-1V4m0 0h-4m4 0l-5 5M4 16v4m0 0h4m-4 0l5-5m11 5l-5-5m5 5v-4m0 4h-4"></path>
            </svg>
        </button>
    </div>

    <script>
        let currentSlide = 0;
        const slides = document.querySelectorAll('.slide');
        const totalSlides = slides.length;

        document.getElementById('totalSlides').textContent = totalSlides;

        showSlide(0);

        function showSlide(index) {
            slides.forEach(slide => slide.classList.remove('active'));
            slides[index].classList.add('active');
            currentSlide = index;
            document.getElementById('currentSlide').textContent = index + 1;

            const progress = ((index + 1) / totalSlides) * 100;
            document.getElementById('progressBar').style.width = progress + '%';
        }

        function nextSlide() {
            if (currentSlide < totalSlides - 1) {
                showSlide(currentSlide + 1);
            }
        }

        function prevSlide() {
            if (currentSlide > 0) {
                showSlide(currentSlide - 1);
            }
        }

        function toggleNotes() {
            const notes = document.getElementById('notes-' + currentSlide);
            if (notes) {
                notes.classList.toggle('hidden');
            }
        }

        function toggleFullscreen() {
            if (!document.fullscreenElement) {
                document.documentElement.requestFullscreen();
            } else {
                document.exitFullscreen();
            }
        }

        document.addEventListener('keydown', (e) => {
            if (e.key === 'ArrowRight' || e.key === ' ') {
                nextSlide();
            } else if (e.key === 'ArrowLeft') {
                prevSlide();
            } else if (e.key === 'n' || e.key === 'N') {
                toggleNotes();
            } else if (e.key === 'f' || e.key === 'F') {
                toggleFullscreen();
            }
        });
    </script>
</body>
</html>
`
